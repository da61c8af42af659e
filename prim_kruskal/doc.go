// Package prim_kruskal computes minimum spanning trees over an undirected,
// weighted Network with two classic algorithms built on the sibling
// data-structure packages:
//
//   - Kruskal sorts every edge by weight and merges components with a
//     dsu.DSU, skipping edges whose endpoints are already connected.
//     O(E log E + α(V)·E) time, O(V + E) memory.
//
//   - Prim grows one tree from a root, keeping candidate edges in a
//     heap.MinHeap and always taking the lightest edge that reaches a new
//     vertex. O(E log E) time, O(V + E) memory.
//
// Both are deterministic: equal weights break ties by the order in which
// edges were added to the Network.
//
// SpanningForest is the Kruskal variant that tolerates disconnected input
// and reports the number of components instead of failing.
//
// Errors:
//
//   - ErrNetworkNil    nil *Network
//   - ErrDisconnected  empty network, or no single tree spans every vertex
//   - ErrRootNotFound  Prim root is not a vertex
//   - ErrInvalidWeight AddEdge with a NaN weight
//   - ErrUnknownMethod Compute with an unsupported Method
package prim_kruskal
