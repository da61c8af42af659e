package prim_kruskal

import (
	"fmt"

	"github.com/katalvlaran/corekit/heap"
)

// candidate is a heap entry: an edge leaving the tree towards to.
type candidate struct {
	pos int // position in Network.edges, the tie-breaker
	to  int
	w   float64
}

func lessCandidate(a, b candidate) bool {
	if a.w != b.w {
		return a.w < b.w
	}
	return a.pos < b.pos
}

// Prim grows a minimum spanning tree from root. Edges are returned in the
// order their far endpoint joined the tree, oriented away from root.
//
// Returns ErrNetworkNil, ErrDisconnected for an empty or disconnected
// network, or ErrRootNotFound.
func Prim[V comparable](n *Network[V], root V) ([]Edge[V], float64, error) {
	if n == nil {
		return nil, 0, ErrNetworkNil
	}
	vn := n.Order()
	if vn == 0 {
		return nil, 0, ErrDisconnected
	}
	r, ok := n.index[root]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %v", ErrRootNotFound, root)
	}

	visited := make([]bool, vn)
	mst := make([]Edge[V], 0, vn-1)
	var total float64
	pq := heap.NewFunc[candidate](lessCandidate)

	push := func(from int) {
		for _, pos := range n.adj[from] {
			e := n.edges[pos]
			to := n.index[e.To]
			if to == from {
				to = n.index[e.From]
			}
			if !visited[to] {
				pq.Insert(candidate{pos: pos, to: to, w: e.Weight})
			}
		}
	}

	visited[r] = true
	push(r)
	for !pq.IsEmpty() && len(mst) < vn-1 {
		c, _ := pq.ExtractMin() // non-empty
		if visited[c.to] {
			continue
		}
		visited[c.to] = true

		e := n.edges[c.pos]
		if n.index[e.To] != c.to {
			e.From, e.To = e.To, e.From
		}
		mst = append(mst, e)
		total += e.Weight
		push(c.to)
	}

	if len(mst) < vn-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}
