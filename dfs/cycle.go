package dfs

import (
	"context"

	"github.com/katalvlaran/corekit/core"
)

// HasCycle reports whether g contains a directed cycle (self-loops count).
// A nil graph is treated as cycle-free.
//
// Complexity: O(V + E) time, O(V) memory.
func HasCycle[V comparable](g *core.Graph[V]) bool {
	_, found := FindCycle(g)
	return found
}

// FindCycle returns one directed cycle of g, closed so that the first and
// last elements are equal (e.g. [A B C A], or [A A] for a self-loop).
// The cycle is the first back edge met when searching from each vertex in
// insertion order. Returns (nil, false) for an acyclic or nil graph.
func FindCycle[V comparable](g *core.Graph[V]) ([]V, bool) {
	if g == nil {
		return nil, false
	}
	cycle, _ := colorWalk(context.Background(), g, nil)

	return cycle, cycle != nil
}

// colorWalk runs a three-colour DFS from every White vertex of g in
// insertion order, calling finish in post-order.
//
// Steps:
//  1. Mark a vertex Gray when its frame is pushed.
//  2. Edge into White: push. Edge into Black: ignore (forward/cross edge).
//     Edge into Gray: back edge; the stack from that vertex up is the cycle.
//  3. Mark a vertex Black and call finish when its frame is exhausted.
//
// It stops at the first back edge and returns the closed cycle, or returns
// ctx.Err() if the context is cancelled first.
func colorWalk[V comparable](ctx context.Context, g *core.Graph[V], finish func(V)) ([]V, error) {
	state := make(map[V]int, g.Order())

	for _, root := range g.Vertices() {
		if state[root] != White {
			continue
		}
		state[root] = Gray
		stack := []frame[V]{{v: root}}

		for len(stack) > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			top := &stack[len(stack)-1]
			nbs, _ := g.Adjacent(top.v)
			if top.next >= len(nbs) {
				state[top.v] = Black
				if finish != nil {
					finish(top.v)
				}
				stack = stack[:len(stack)-1]
				continue
			}

			nb := nbs[top.next]
			top.next++
			switch state[nb] {
			case White:
				state[nb] = Gray
				stack = append(stack, frame[V]{v: nb})
			case Gray:
				return closeCycle(stack, nb), nil
			}
		}
	}

	return nil, nil
}

// closeCycle extracts the Gray path from back-edge target to the top of the
// stack and closes it with target.
func closeCycle[V comparable](stack []frame[V], target V) []V {
	i := len(stack) - 1
	for stack[i].v != target {
		i--
	}
	cycle := make([]V, 0, len(stack)-i+1)
	for _, f := range stack[i:] {
		cycle = append(cycle, f.v)
	}

	return append(cycle, target)
}
