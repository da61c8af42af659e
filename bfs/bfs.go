package bfs

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/corekit/core"
)

// BreadthFirst returns a lazy walk from start in BFS order.
// A nil graph or unknown start yields nothing. Breaking out of the range
// loop stops the walk.
func BreadthFirst[V comparable](g *core.Graph[V], start V) iter.Seq[V] {
	return func(yield func(V) bool) {
		if g == nil || !g.HasVertex(start) {
			return
		}
		seen := map[V]struct{}{start: {}}
		queue := []V{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			if !yield(v) {
				return
			}
			nbs, _ := g.Adjacent(v)
			for _, nb := range nbs {
				if _, ok := seen[nb]; ok {
					continue
				}
				seen[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
	}
}

// queueItem pairs a vertex with its BFS depth.
type queueItem[V comparable] struct {
	v     V
	depth int
}

// walker encapsulates mutable BFS state.
type walker[V comparable] struct {
	graph   *core.Graph[V]
	opts    Options[V]
	queue   []queueItem[V]
	visited map[V]bool
	res     *Result[V]
}

// BFS runs breadth-first search on g from start, applying any number of
// functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation, or
// any hook error. On error the partial Result is returned alongside it.
func BFS[V comparable](g *core.Graph[V], start V, opts ...Option[V]) (*Result[V], error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions[V]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartVertexNotFound, start)
	}

	n := g.Order()
	w := &walker[V]{
		graph:   g,
		opts:    o,
		queue:   make([]queueItem[V], 0, n),
		visited: make(map[V]bool, n),
		res: &Result[V]{
			Order:  make([]V, 0, n),
			Depth:  make(map[V]int, n),
			Parent: make(map[V]V, n),
		},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

// enqueue marks v visited at depth d, calls OnEnqueue and appends it.
func (w *walker[V]) enqueue(v V, d int) {
	w.visited[v] = true
	w.res.Depth[v] = d
	w.opts.OnEnqueue(v, d)
	w.queue = append(w.queue, queueItem[V]{v: v, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker[V]) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.v)
		if err := w.opts.OnVisit(item.v, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %v: %w", item.v, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth, then enqueues each
// unseen neighbour.
func (w *walker[V]) enqueueNeighbors(item queueItem[V]) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	nbs, _ := w.graph.Adjacent(item.v)
	for _, nb := range nbs {
		if w.visited[nb] || !w.opts.FilterNeighbor(item.v, nb) {
			continue
		}
		w.res.Parent[nb] = item.v
		w.enqueue(nb, next)
	}
}
