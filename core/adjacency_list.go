package core

import (
	"cmp"
	"fmt"
	"slices"
)

// FromAdjacency builds a graph from a vertex -> neighbours mapping.
//
// Steps:
//  1. Insert every key in ascending order.
//  2. For each key (same order) append its neighbours as given; neighbours
//     that are not keys become vertices on first mention.
//
// Complexity: O(V log V + E).
func FromAdjacency[V cmp.Ordered](adj map[V][]V) *Graph[V] {
	keys := make([]V, 0, len(adj))
	for v := range adj {
		keys = append(keys, v)
	}
	slices.Sort(keys)

	g := New[V]()
	for _, v := range keys {
		g.AddVertex(v)
	}
	for _, v := range keys {
		for _, to := range adj[v] {
			g.AddEdge(v, to)
		}
	}

	return g
}

// AddVertex inserts v if missing. Adding an existing vertex is a no-op.
// Complexity: O(1) amortised.
func (g *Graph[V]) AddVertex(v V) {
	g.ensure(v)
}

// AddEdge appends the directed edge from -> to, creating either endpoint on
// demand. Parallel edges and self-loops are kept.
// Complexity: O(1) amortised.
func (g *Graph[V]) AddEdge(from, to V) {
	i := g.ensure(from)
	g.ensure(to)
	g.adj[i] = append(g.adj[i], to)
	g.edges++
}

// AddUndirectedEdge stores the symmetric pair u -> v and v -> u.
// For a self-loop (u == v) a single edge is stored.
func (g *Graph[V]) AddUndirectedEdge(u, v V) {
	g.AddEdge(u, v)
	if u != v {
		g.AddEdge(v, u)
	}
}

// HasVertex reports whether v is in the graph.
func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.index[v]
	return ok
}

// Vertices returns a copy of all vertices in insertion order.
func (g *Graph[V]) Vertices() []V {
	return slices.Clone(g.order)
}

// Neighbors returns a copy of v's outgoing neighbours in insertion order.
// Returns ErrVertexNotFound if v is absent.
func (g *Graph[V]) Neighbors(v V) ([]V, error) {
	i, ok := g.index[v]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrVertexNotFound, v)
	}

	return slices.Clone(g.adj[i]), nil
}

// Order returns |V|.
func (g *Graph[V]) Order() int { return len(g.order) }

// Size returns |E|, counting parallel edges individually.
func (g *Graph[V]) Size() int { return g.edges }

// Reverse returns the transpose: every edge u -> v becomes v -> u.
// Vertex order is preserved; each reversed neighbour list follows the
// order in which the original edges are enumerated.
//
// Complexity: O(V + E).
func (g *Graph[V]) Reverse() *Graph[V] {
	r := New[V]()
	for _, v := range g.order {
		r.AddVertex(v)
	}
	for i, from := range g.order {
		for _, to := range g.adj[i] {
			r.AddEdge(to, from)
		}
	}

	return r
}

// Clone returns a deep copy that shares nothing with g.
func (g *Graph[V]) Clone() *Graph[V] {
	c := &Graph[V]{
		order: slices.Clone(g.order),
		index: make(map[V]int, len(g.index)),
		adj:   make([][]V, len(g.adj)),
		edges: g.edges,
	}
	for v, i := range g.index {
		c.index[v] = i
	}
	for i, nbs := range g.adj {
		c.adj[i] = slices.Clone(nbs)
	}

	return c
}

// Adjacent exposes v's neighbour slice without copying, for the traversal
// packages' inner loops. Callers must not modify the result.
// The bool is false if v is absent.
func (g *Graph[V]) Adjacent(v V) ([]V, bool) {
	i, ok := g.index[v]
	if !ok {
		return nil, false
	}

	return g.adj[i], true
}

// ensure returns v's position, inserting it if needed.
func (g *Graph[V]) ensure(v V) int {
	if g.index == nil {
		g.index = make(map[V]int)
	}
	if i, ok := g.index[v]; ok {
		return i
	}
	i := len(g.order)
	g.index[v] = i
	g.order = append(g.order, v)
	g.adj = append(g.adj, nil)

	return i
}
