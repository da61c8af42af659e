// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted shortest-path distances, parent links and visit order.
//
// BFS explores vertices in increasing distance from a start vertex using an
// explicit FIFO queue. A vertex is marked when it is enqueued, so each one is
// visited exactly once; siblings are visited in neighbour-list order.
//
//   - BreadthFirst(g, start): lazy iter.Seq of the visit order.
//   - BFS(g, start, opts...): eager traversal with Depth, Parent and PathTo,
//     hooks, depth limiting and neighbour filtering.
//
// All state is per call, so concurrent searches on one graph are safe.
//
// Complexity: Time O(V+E), Memory O(V).
package bfs
