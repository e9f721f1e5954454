package ppr

import (
	"fmt"
	"math"

	"github.com/vertex-lab/ssppr/pkg/models"
)

/*
WalkBudget() returns the number of walks w that guarantees, with probability at
least 1 - pf, a relative error of at most eps for every node whose ppr is at least delta:

	w = floor((2eps/3 + 2) * ln(2/pf) / (eps^2 * delta))

The result is at least 1.
*/
func WalkBudget(eps, delta, pf float64) float64 {
	return walkBudget(eps, delta, pf, 1)
}

func walkBudget(eps, delta, pf, factor float64) float64 {
	w := math.Floor(factor * (2*eps/3 + 2) * math.Log(2/pf) / (eps * eps * delta))
	return math.Max(w, 1)
}

// ForaSkeleton() runs ForwardPush with the given rmax, then simulates the same number
// of walks from every node u with a positive residual, each adding r[u]/walks to
// the ppr of the node where it stopped.
func ForaSkeleton(G models.Graph, source uint32, alpha, rmax float64, walks int, rng models.Rand) (models.Vector, error) {
	if err := checkInputs(G, source, alpha); err != nil {
		return nil, err
	}

	if err := checkRand(rng); err != nil {
		return nil, err
	}

	if err := checkPositive("rmax", rmax); err != nil {
		return nil, err
	}

	if walks <= 0 {
		return nil, fmt.Errorf("%w: the number of walks must be positive, got %d", models.ErrInvalidArgument, walks)
	}

	ppr, _, err := foraSkeleton(G, source, alpha, rmax, walks, rng)
	return ppr, err
}

func foraSkeleton(G models.Graph, source uint32, alpha, rmax float64, walks int, rng models.Rand) (models.Vector, int, error) {
	ppr, r := forwardPush(G, source, alpha, rmax)
	return completeWithWalks(G, alpha, ppr, r, func(float64) int { return walks }, rng)
}

/*
Fora() approximates the personalized pagerank of source with relative error eps
for the nodes whose ppr is at least delta, with failure probability pf.

It computes the walk budget w = WalkBudget(eps, delta, pf), runs ForwardPush with
rmax = sqrt(1/(m*w)), and then simulates ceil(r[u] * w) walks from every node u
with positive residual, each adding r[u] divided by that count.

# REFERENCES

[1] S. Wang, R. Yang, X. Xiao, Z. Wei, Y. Yang; "FORA: Simple and Effective
Approximate Single-Source Personalized PageRank"
URL: https://doi.org/10.1145/3097983.3098072
*/
func Fora(G models.Graph, source uint32, alpha, eps, delta, pf float64, rng models.Rand) (models.Vector, error) {
	if err := checkHybrid(G, source, alpha, eps, delta, pf, rng); err != nil {
		return nil, err
	}

	ppr, _, err := fora(G, source, alpha, eps, delta, pf, rng)
	return ppr, err
}

func fora(G models.Graph, source uint32, alpha, eps, delta, pf float64, rng models.Rand) (models.Vector, int, error) {
	w := WalkBudget(eps, delta, pf)
	rmax := math.Sqrt(1.0 / (float64(G.EdgeCount()) * w))

	ppr, r := forwardPush(G, source, alpha, rmax)
	return completeWithWalks(G, alpha, ppr, r, walksProportional(w), rng)
}

/*
SpeedPPR() is the same as Fora, but with a doubled walk budget w and PowerPush
in place of ForwardPush, with lambda = m/w. The residual left is then completed
with ceil(r[u] / rmax) walks per node, where rmax = 1/w.

# REFERENCES

[1] H. Wu, J. Gan, Z. Wei, R. Zhang; "Unifying the Global and Local Approaches:
An Efficient Power Iteration with Forward Push"
URL: https://doi.org/10.1145/3448016.3457298
*/
func SpeedPPR(G models.Graph, source uint32, alpha, eps, delta, pf float64, rng models.Rand) (models.Vector, error) {
	if err := checkHybrid(G, source, alpha, eps, delta, pf, rng); err != nil {
		return nil, err
	}

	ppr, _, err := speedPPR(G, source, alpha, eps, delta, pf, rng)
	return ppr, err
}

func speedPPR(G models.Graph, source uint32, alpha, eps, delta, pf float64, rng models.Rand) (models.Vector, int, error) {
	w := walkBudget(eps, delta, pf, 2)
	lambda := float64(G.EdgeCount()) / w

	ppr, r := powerPush(G, source, alpha, lambda)
	return completeWithWalks(G, alpha, ppr, r, walksProportional(w), rng)
}

// walksProportional() returns the walk count ceil(r[u] * w), which is ceil(r[u] / rmax) for rmax = 1/w.
func walksProportional(w float64) func(residual float64) int {
	return func(residual float64) int {
		return int(math.Ceil(residual * w))
	}
}

// completeWithWalks() converts the residual of every node u into walksFor(r[u]) walks
// from u, each adding r[u] divided by that count to the ppr of its last node.
// It returns the completed ppr and the number of walks simulated.
func completeWithWalks(
	G models.Graph,
	alpha float64,
	ppr, r models.Vector,
	walksFor func(residual float64) int,
	rng models.Rand) (models.Vector, int, error) {

	total := 0
	for u, residual := range r {
		if residual <= 0 {
			continue
		}

		count := walksFor(residual)
		share := residual / float64(count)

		for i := 0; i < count; i++ {
			node, err := walk(G, uint32(u), alpha, rng)
			if err != nil {
				return nil, total, err
			}
			ppr[node] += share
		}

		total += count
	}

	return ppr, total, nil
}

func checkHybrid(G models.Graph, source uint32, alpha, eps, delta, pf float64, rng models.Rand) error {
	if err := checkInputs(G, source, alpha); err != nil {
		return err
	}

	if err := checkRand(rng); err != nil {
		return err
	}

	params := Params{Alpha: alpha, Eps: eps, Delta: delta, Pf: pf}
	return params.validateBudget()
}
