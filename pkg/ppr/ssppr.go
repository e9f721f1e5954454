/*
The ppr package implements the single-source personalized pagerank estimators:
deterministic push (ForwardPush, PowerPush), Monte-Carlo (RandomWalk), hybrids
of the two (ForaSkeleton, Fora, SpeedPPR) and variance-reduced Monte-Carlo (PPW).

Estimate() dispatches to them by method name.

All the estimators are single-threaded. The randomized ones draw from the
models.Rand passed by the caller, so a seeded generator makes them reproducible.
*/
package ppr

import (
	"fmt"
	"time"

	"github.com/vertex-lab/ssppr/pkg/metrics"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/random"
)

type Method string

const (
	MethodForwardPush  Method = "forwardpush"
	MethodRandomWalk   Method = "rw"
	MethodForaSkeleton Method = "fora_skeleton"
	MethodFora         Method = "fora"
	MethodSpeedPPR     Method = "speedppr"
	MethodPPW          Method = "ppw"
)

// Methods returns all the supported methods.
func Methods() []Method {
	return []Method{MethodForwardPush, MethodRandomWalk, MethodForaSkeleton, MethodFora, MethodSpeedPPR, MethodPPW}
}

// ParseMethod() returns the method with the given name ("push" is an alias of "forwardpush").
func ParseMethod(name string) (Method, error) {
	if name == "push" {
		return MethodForwardPush, nil
	}

	for _, method := range Methods() {
		if name == string(method) {
			return method, nil
		}
	}

	return "", fmt.Errorf("%w: unsupported method %q", models.ErrInvalidArgument, name)
}

// IsDeterministic() returns whether the method doesn't use randomness.
func (m Method) IsDeterministic() bool {
	return m == MethodForwardPush
}

/*
Estimate() returns the personalized pagerank of source computed with the specified method.

The zero fields of params are replaced with their defaults (see Params.WithDefaults),
while alpha must always be in (0,1]. If rng is nil, a time-seeded generator is used.

On any error no vector is returned. The errors wrap models.ErrInvalidArgument
(unsupported method or invalid params), models.ErrOutOfRange (source not in the graph)
or models.ErrDanglingNode (a walk reached a dangling node).
*/
func Estimate(G models.Graph, source uint32, method string, params Params, rng models.Rand) (ppr models.Vector, err error) {
	var m Method
	start := time.Now()
	defer func() {
		label := string(m)
		if label == "" {
			label = "unknown"
		}
		metrics.ObserveEstimation(label, err, time.Since(start))
	}()

	if err = checkGraph(G, source); err != nil {
		return nil, err
	}

	if m, err = ParseMethod(method); err != nil {
		return nil, err
	}

	params = params.WithDefaults(G.NodeCount())
	if err = params.Validate(); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = random.NewTimeSeeded()
	}

	var walks int
	switch m {
	case MethodForwardPush:
		ppr, _ = forwardPush(G, source, params.Alpha, params.Rmax)

	case MethodRandomWalk:
		ppr, err = randomWalk(G, source, params.Alpha, params.RWNum, rng)
		walks = params.RWNum

	case MethodForaSkeleton:
		ppr, walks, err = foraSkeleton(G, source, params.Alpha, params.Rmax, params.RWNum, rng)

	case MethodFora:
		ppr, walks, err = fora(G, source, params.Alpha, params.Eps, params.Delta, params.Pf, rng)

	case MethodSpeedPPR:
		ppr, walks, err = speedPPR(G, source, params.Alpha, params.Eps, params.Delta, params.Pf, rng)

	case MethodPPW:
		ppr, walks, err = ppw(G, source, params.Alpha, params.PiNum, params.SampleSize, params.BatchSize, rng)
	}

	metrics.AddWalks(string(m), walks)
	if err != nil {
		return nil, err
	}

	return ppr, nil
}
