package random

import (
	"fmt"
	"math"
	"testing"
)

func TestDeterminism(t *testing.T) {
	rng1 := NewGenerator(69)
	rng2 := NewGenerator(69)

	for i := 0; i < 1000; i++ {
		if rng1.Uint32() != rng2.Uint32() {
			t.Fatalf("NewGenerator(69): draw %d differs between two generators with the same seed", i)
		}
	}
}

func TestFloat(t *testing.T) {
	rng := NewGenerator(42)
	const draws = 100000

	sum := 0.0
	for i := 0; i < draws; i++ {
		u := rng.Float()
		if u < 0 || u >= 1 {
			t.Fatalf("Float(): expected a value in [0,1), got %v", u)
		}
		sum += u
	}

	if mean := sum / draws; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("Float(): expected mean 0.5, got %v", mean)
	}
}

func TestUniform(t *testing.T) {
	testCases := []struct {
		name string
		n    uint32
	}{
		{name: "single value", n: 1},
		{name: "small range", n: 3},
		{name: "power of two", n: 8},
		{name: "bigger range", n: 17},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			rng := NewGenerator(7)
			const draws = 170000
			counts := make([]int, test.n)

			for i := 0; i < draws; i++ {
				x := rng.Uniform(test.n)
				if x >= test.n {
					t.Fatalf("Uniform(%d): expected a value in [0,%d), got %d", test.n, test.n, x)
				}
				counts[x]++
			}

			expected := 1.0 / float64(test.n)
			for x, count := range counts {
				freq := float64(count) / draws
				if math.Abs(freq-expected) > 0.01 {
					t.Errorf("Uniform(%d): expected frequency of %d = %v, got %v", test.n, x, expected, freq)
				}
			}
		})
	}
}

func TestGeometric(t *testing.T) {
	t.Run("p = 1", func(t *testing.T) {
		rng := NewGenerator(0)
		for i := 0; i < 100; i++ {
			if x := rng.Geometric(1); x != 1 {
				t.Fatalf("Geometric(1): expected 1, got %d", x)
			}
		}
	})

	t.Run("p = 0", func(t *testing.T) {
		rng := NewGenerator(0)
		if x := rng.Geometric(0); x != math.MaxUint32 {
			t.Fatalf("Geometric(0): expected MaxUint32, got %d", x)
		}
	})

	for _, p := range []float64{0.05, 0.3, 0.8} {
		t.Run(fmt.Sprintf("mean p=%v", p), func(t *testing.T) {
			rng := NewGenerator(11)
			const draws = 100000

			sum := 0.0
			for i := 0; i < draws; i++ {
				x := rng.Geometric(p)
				if x < 1 {
					t.Fatalf("Geometric(%v): expected a value >= 1, got %d", p, x)
				}
				sum += float64(x)
			}

			// the mean is 1/p, the relative standard error is below 1%
			expected := 1 / p
			if mean := sum / draws; math.Abs(mean-expected)/expected > 0.02 {
				t.Errorf("Geometric(%v): expected mean %v, got %v", p, expected, mean)
			}
		})
	}
}

func TestBinomial(t *testing.T) {
	testCases := []struct {
		name     string
		n        uint32
		p        float64
		expected uint32
	}{
		{name: "p = 0", n: 100, p: 0, expected: 0},
		{name: "p = 1", n: 100, p: 1, expected: 100},
		{name: "n = 0", n: 0, p: 0.5, expected: 0},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			rng := NewGenerator(3)
			if x := rng.Binomial(test.n, test.p); x != test.expected {
				t.Errorf("Binomial(%d, %v): expected %d, got %d", test.n, test.p, test.expected, x)
			}
		})
	}

	t.Run("mean and bounds", func(t *testing.T) {
		rng := NewGenerator(5)
		const draws = 20000
		const n, p = 100, 0.3

		sum := 0.0
		for i := 0; i < draws; i++ {
			x := rng.Binomial(n, p)
			if x > n {
				t.Fatalf("Binomial(%d, %v): expected at most %d, got %d", n, p, n, x)
			}
			sum += float64(x)
		}

		if mean := sum / draws; math.Abs(mean-n*p) > 0.3 {
			t.Errorf("Binomial(%d, %v): expected mean %v, got %v", n, p, n*p, mean)
		}
	})
}

// ---------------------------------BENCHMARK----------------------------------

func BenchmarkUniform(b *testing.B) {
	rng := NewGenerator(69)
	for i := 0; i < b.N; i++ {
		rng.Uniform(1000003)
	}
}

func BenchmarkBinomial(b *testing.B) {
	rng := NewGenerator(69)
	for i := 0; i < b.N; i++ {
		rng.Binomial(1000, 0.1)
	}
}
