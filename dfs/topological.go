package dfs

import (
	"context"
	"slices"

	"github.com/katalvlaran/corekit/core"
)

// TopoOption configures optional behavior for TopologicalSort.
type TopoOption func(*topoOptions)

// topoOptions holds settings for TopologicalSort, currently only cancellation.
type topoOptions struct {
	ctx context.Context
}

// WithCancelContext returns a TopoOption that sets the cancellation context.
// Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// TopologicalSort orders all vertices of g so that every edge u -> v has u
// before v. Each vertex is prepended to the result when it finishes, i.e.
// the order is reverse post-order over a DFS of every vertex.
//
// Returns ErrGraphNil for a nil graph, a *CycleError (matching
// ErrCycleDetected) if g has a cycle, or the context error on cancellation.
// Self-loops are cycles.
//
// Complexity: O(V + E) time, O(V) memory.
func TopologicalSort[V comparable](g *core.Graph[V], options ...TopoOption) ([]V, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	opts := topoOptions{ctx: context.Background()}
	for _, opt := range options {
		opt(&opts)
	}

	order := make([]V, 0, g.Order())
	cycle, err := colorWalk(opts.ctx, g, func(v V) {
		order = append(order, v)
	})
	if err != nil {
		return nil, err
	}
	if cycle != nil {
		return nil, &CycleError[V]{Cycle: cycle}
	}
	slices.Reverse(order)

	return order, nil
}
