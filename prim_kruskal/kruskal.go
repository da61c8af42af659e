package prim_kruskal

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/corekit/dsu"
)

// Kruskal computes a minimum spanning tree of n. Edges are returned in the
// order they were accepted (non-decreasing weight).
//
// Returns ErrNetworkNil, or ErrDisconnected when n is empty or no single
// tree spans it. A single vertex yields an empty tree.
func Kruskal[V comparable](n *Network[V]) ([]Edge[V], float64, error) {
	if n == nil {
		return nil, 0, ErrNetworkNil
	}
	if n.Order() == 0 {
		return nil, 0, ErrDisconnected
	}

	mst, total, sets := kruskal(n)
	if sets > 1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}

// SpanningForest computes a minimum spanning forest: one minimum tree per
// connected component. It never reports ErrDisconnected; components is the
// number of trees.
func SpanningForest[V comparable](n *Network[V]) (edges []Edge[V], total float64, components int, err error) {
	if n == nil {
		return nil, 0, 0, ErrNetworkNil
	}
	edges, total, components = kruskal(n)

	return edges, total, components, nil
}

func kruskal[V comparable](n *Network[V]) ([]Edge[V], float64, int) {
	vn := n.Order()
	// Stable sort keeps insertion order among equal weights.
	sorted := slices.Clone(n.edges)
	slices.SortStableFunc(sorted, func(a, b Edge[V]) int {
		return cmp.Compare(a.Weight, b.Weight)
	})

	sets, _ := dsu.New(vn) // vn >= 0
	mst := make([]Edge[V], 0, max(vn-1, 0))
	var total float64
	for _, e := range sorted {
		if sets.Count() == 1 {
			break
		}
		u, v := n.index[e.From], n.index[e.To]
		if u == v {
			continue
		}
		merged, _ := sets.Union(u, v) // u, v < vn
		if !merged {
			continue
		}
		mst = append(mst, e)
		total += e.Weight
	}

	return mst, total, sets.Count()
}
