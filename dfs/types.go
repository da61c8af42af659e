package dfs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is on the current DFS path.
	Black        // Black: the vertex and all its descendants are finished.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed in.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex does not exist
	// in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected indicates that TopologicalSort met a back edge.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dfs: invalid option supplied")
)

// CycleError reports the cycle that made a topological order impossible.
// Cycle is closed: its first and last elements are the same vertex.
// errors.Is(err, ErrCycleDetected) holds for every *CycleError.
type CycleError[V comparable] struct {
	Cycle []V
}

// Error renders the cycle as "a -> b -> a".
func (e *CycleError[V]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, v := range e.Cycle {
		parts[i] = fmt.Sprint(v)
	}

	return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(parts, " -> "))
}

// Unwrap lets errors.Is match ErrCycleDetected.
func (e *CycleError[V]) Unwrap() error { return ErrCycleDetected }

// frame is one explicit-stack entry: a vertex and the index of the next
// neighbour to examine.
type frame[V comparable] struct {
	v     V
	next  int
	depth int
}

// Option configures optional behavior of DFS traversal.
// Use with DFS(g, start, opts...).
type Option[V comparable] func(*Options[V])

// Options holds configurable parameters for DFS traversal.
// Complexity remains O(V+E) when filters and hooks are O(1).
type Options[V comparable] struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, runs when a vertex is discovered (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(v V, depth int) error

	// OnExit, if non-nil, runs after all descendants of a vertex are
	// finished (post-order). Returning an error aborts traversal.
	OnExit func(v V) error

	// MaxDepth, if non-negative, stops descent below the given depth.
	// 0 visits only the start vertex. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each edge curr -> next.
	// Return false to skip that edge.
	FilterNeighbor func(curr, next V) bool

	// FullTraversal, if true, restarts from every unvisited vertex in
	// insertion order, covering disconnected components.
	FullTraversal bool

	err error
}

// DefaultOptions returns Options with a background context, no hooks,
// no depth limit, no filtering and single-source traversal.
func DefaultOptions[V comparable]() Options[V] {
	return Options[V]{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the Context for traversal. A nil context has no effect.
func WithContext[V comparable](ctx context.Context) Option[V] {
	return func(o *Options[V]) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit[V comparable](fn func(v V, depth int) error) Option[V] {
	return func(o *Options[V]) {
		o.OnVisit = fn
	}
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit[V comparable](fn func(v V) error) Option[V] {
	return func(o *Options[V]) {
		o.OnExit = fn
	}
}

// WithMaxDepth limits traversal depth; 0 means only the start vertex.
// A negative limit is recorded and surfaced as ErrOptionViolation.
func WithMaxDepth[V comparable](limit int) Option[V] {
	return func(o *Options[V]) {
		if limit < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, limit)
			return
		}
		o.MaxDepth = limit
	}
}

// WithFilterNeighbor skips edges for which fn returns false.
func WithFilterNeighbor[V comparable](fn func(curr, next V) bool) Option[V] {
	return func(o *Options[V]) {
		o.FilterNeighbor = fn
	}
}

// WithFullTraversal makes DFS restart from each unvisited vertex, covering
// disconnected components. The start argument then only picks the first root.
func WithFullTraversal[V comparable]() Option[V] {
	return func(o *Options[V]) {
		o.FullTraversal = true
	}
}

// Result captures the outcome of a depth-first traversal.
type Result[V comparable] struct {
	// Order lists vertices in discovery order (pre-order).
	Order []V

	// PostOrder lists vertices in the order they finished.
	PostOrder []V

	// Depth maps each vertex to its tree depth (#edges from its root).
	Depth map[V]int

	// Parent maps each vertex to the vertex it was discovered from.
	// Roots have no entry.
	Parent map[V]V

	// Visited flags every vertex reached.
	Visited map[V]bool

	// SkippedNeighbors counts edges dropped by FilterNeighbor.
	SkippedNeighbors int
}
