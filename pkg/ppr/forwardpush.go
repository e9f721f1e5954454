package ppr

import (
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/utils/worklist"
)

/*
ForwardPush() approximates the personalized pagerank of source deterministically,
by repeatedly pushing the residual of the active nodes to their out-neighbors.

A node u is active while r[u] > Degree(u) * rmax. When it's processed, alpha * r[u]
is added to ppr[u] and the remaining (1-alpha) * r[u] is split evenly among its
out-neighbors. A dangling node keeps its whole residual, which is added to ppr[u].

It returns the estimate ppr and the residual r. At every step sum(ppr) + sum(r) = 1,
and at the end r[u] <= Degree(u) * rmax for every node u.

# REFERENCES

[1] S. Wang, R. Yang, X. Xiao, Z. Wei, Y. Yang; "FORA: Simple and Effective
Approximate Single-Source Personalized PageRank"
URL: https://doi.org/10.1145/3097983.3098072
*/
func ForwardPush(G models.Graph, source uint32, alpha, rmax float64) (ppr, r models.Vector, err error) {
	if err := checkInputs(G, source, alpha); err != nil {
		return nil, nil, err
	}

	if err := checkPositive("rmax", rmax); err != nil {
		return nil, nil, err
	}

	ppr, r = forwardPush(G, source, alpha, rmax)
	return ppr, r, nil
}

func forwardPush(G models.Graph, source uint32, alpha, rmax float64) (ppr, r models.Vector) {
	n := G.NodeCount()
	ppr = make(models.Vector, n)
	r = make(models.Vector, n)
	r[source] = 1.0

	// the nodeIDs of G are in [0, n), so Push never fails
	queue := worklist.New(n)
	_ = queue.Push(source)

	activate := func(v uint32) {
		if r[v] > float64(G.Degree(v))*rmax {
			_ = queue.Push(v)
		}
	}

	for {
		u, ok := queue.Pop()
		if !ok {
			break
		}

		pushNode(G, u, alpha, ppr, r, activate)
	}

	return ppr, r
}

/*
pushNode() moves the residual of u: alpha * r[u] goes to ppr[u] and the rest is
split evenly among the out-neighbors of u, calling touched(v) on each of them.
A dangling node absorbs its whole residual. It returns the mass removed from r.

r[u] is reset before the split, so a self-loop correctly returns part of the mass to u.
*/
func pushNode(G models.Graph, u uint32, alpha float64, ppr, r models.Vector, touched func(v uint32)) float64 {
	ru := r[u]
	r[u] = 0

	neighbors := G.Neighbors(u)
	if len(neighbors) == 0 {
		ppr[u] += ru
		return ru
	}

	ppr[u] += alpha * ru
	ruv := (1.0 - alpha) * ru / float64(len(neighbors))
	for _, v := range neighbors {
		r[v] += ruv
		if touched != nil {
			touched(v)
		}
	}

	return alpha * ru
}
