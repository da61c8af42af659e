package dfs

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/corekit/core"
)

// DepthFirst returns a lazy pre-order walk from start.
//
// The walk keeps an explicit stack of frames; the first-listed neighbour of
// a vertex is explored (and its subtree finished) before the second, which
// is the order a recursive DFS would produce. Each reachable vertex is
// yielded exactly once. Breaking out of the range loop stops the walk.
// A nil graph or unknown start yields nothing.
func DepthFirst[V comparable](g *core.Graph[V], start V) iter.Seq[V] {
	return func(yield func(V) bool) {
		if g == nil || !g.HasVertex(start) {
			return
		}
		visited := map[V]struct{}{start: {}}
		if !yield(start) {
			return
		}

		stack := []frame[V]{{v: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbs, _ := g.Adjacent(top.v)
			if top.next >= len(nbs) {
				stack = stack[:len(stack)-1]
				continue
			}
			nb := nbs[top.next]
			top.next++
			if _, seen := visited[nb]; seen {
				continue
			}
			visited[nb] = struct{}{}
			if !yield(nb) {
				return
			}
			stack = append(stack, frame[V]{v: nb})
		}
	}
}

// walker encapsulates state during DFS.
type walker[V comparable] struct {
	graph   *core.Graph[V]
	opts    Options[V]
	res     *Result[V]
	skipped int
}

// DFS performs depth-first search on g from start. With WithFullTraversal it
// then restarts from every unvisited vertex in insertion order.
// Returns the Result collected so far together with any error from the
// context or a hook.
func DFS[V comparable](g *core.Graph[V], start V, opts ...Option[V]) (*Result[V], error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := DefaultOptions[V]()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 3. Single-source mode: verify start
	hasStart := g.HasVertex(start)
	if !o.FullTraversal && !hasStart {
		return nil, fmt.Errorf("%w: %v", ErrStartVertexNotFound, start)
	}

	// 4. Initialize result with capacity hints
	n := g.Order()
	res := &Result[V]{
		Order:     make([]V, 0, n),
		PostOrder: make([]V, 0, n),
		Depth:     make(map[V]int, n),
		Parent:    make(map[V]V, n),
		Visited:   make(map[V]bool, n),
	}
	w := &walker[V]{graph: g, opts: o, res: res}

	// 5. Traverse: single tree, then the rest of the forest if asked
	if hasStart {
		if err := w.walk(start); err != nil {
			return res, err
		}
	}
	if o.FullTraversal {
		for _, v := range g.Vertices() {
			if res.Visited[v] {
				continue
			}
			if err := w.walk(v); err != nil {
				return res, err
			}
		}
	}
	res.SkippedNeighbors = w.skipped

	return res, nil
}

// walk runs one DFS tree from root with an explicit frame stack.
func (w *walker[V]) walk(root V) error {
	if err := w.discover(root, 0); err != nil {
		return err
	}
	stack := []frame[V]{{v: root}}

	for len(stack) > 0 {
		// 1. Cancellation check
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		top := &stack[len(stack)-1]
		nbs, _ := w.graph.Adjacent(top.v)

		// 2. Frame exhausted (or depth limit reached): finish the vertex
		atLimit := w.opts.MaxDepth >= 0 && top.depth >= w.opts.MaxDepth
		if atLimit || top.next >= len(nbs) {
			v := top.v
			stack = stack[:len(stack)-1]
			if err := w.finish(v); err != nil {
				return err
			}
			continue
		}

		// 3. Advance to the next neighbour
		nb := nbs[top.next]
		top.next++
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(top.v, nb) {
			w.skipped++
			continue
		}
		if w.res.Visited[nb] {
			continue
		}

		// 4. Descend
		d := top.depth + 1
		w.res.Parent[nb] = top.v
		if err := w.discover(nb, d); err != nil {
			return err
		}
		stack = append(stack, frame[V]{v: nb, depth: d})
	}

	return nil
}

// discover marks v visited at depth d and runs the pre-order hook.
func (w *walker[V]) discover(v V, d int) error {
	w.res.Visited[v] = true
	w.res.Depth[v] = d
	w.res.Order = append(w.res.Order, v)
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(v, d); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %v: %w", v, err)
		}
	}

	return nil
}

// finish runs the post-order hook and records v in PostOrder.
func (w *walker[V]) finish(v V) error {
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(v); err != nil {
			return fmt.Errorf("dfs: OnExit hook for %v: %w", v, err)
		}
	}
	w.res.PostOrder = append(w.res.PostOrder, v)

	return nil
}
