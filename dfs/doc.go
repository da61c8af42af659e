// Package dfs implements depth-first traversal, cycle detection and
// topological sort on a core.Graph.
//
// What:
//
//   - DepthFirst(g, start): lazy pre-order iter.Seq; first-listed neighbour
//     is explored first, every reachable vertex is yielded once.
//   - DFS(g, start, opts...): eager traversal collecting pre-order,
//     post-order, depth and parent maps, with hooks and limits.
//   - HasCycle / FindCycle: three-colour (White, Gray, Black) search over
//     every vertex, so disconnected components are covered. Only an edge
//     into a Gray vertex (a back edge) is a cycle; edges into Black
//     vertices are forward or cross edges.
//   - TopologicalSort: reverse post-order over every vertex, or
//     ErrCycleDetected wrapped in a *CycleError naming one cycle.
//
// Every walk uses an explicit stack of (vertex, next-neighbour) frames, so
// graph depth is bounded by memory rather than by the goroutine stack.
// All bookkeeping (colours, visited sets, stacks) lives in the call, so any
// number of goroutines may run these functions on the same graph.
//
// Complexity:
//
//   - DFS, DepthFirst:  Time O(V+E), Memory O(V)
//   - HasCycle:         Time O(V+E), Memory O(V)
//   - TopologicalSort:  Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start vertex not in graph
//   - ErrOptionViolation      invalid option value
//   - ErrCycleDetected        TopologicalSort on a cyclic graph
//   - context.Canceled        traversal cancelled via context
//   - hook errors             propagated from OnVisit or OnExit
package dfs
