package core

import "errors"

// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
var ErrVertexNotFound = errors.New("core: vertex not found")

// Graph is a directed, unweighted adjacency list over vertices of type V.
//
// index maps a vertex to its position in order and adj; adj[i] lists the
// outgoing neighbours of order[i] in insertion order. The zero value is an
// empty graph ready to use.
type Graph[V comparable] struct {
	order []V
	index map[V]int
	adj   [][]V
	edges int
}

// New returns an empty graph.
func New[V comparable]() *Graph[V] {
	return &Graph[V]{index: make(map[V]int)}
}
