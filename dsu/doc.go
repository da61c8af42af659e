// Package dsu implements a fixed-size disjoint-set-union (union-find) over
// the integer universe 0..n-1, with union by rank and full path compression.
//
// What:
//
//   - Find(x):         representative of x's set; flattens the visited path
//   - Union(x, y):     merges two sets; false if they were already merged
//   - Connected(x, y): Find(x) == Find(y)
//   - Count, SizeOf, Sets, Parent: inspection helpers
//
// Why:
//
//   - Kruskal's minimum spanning tree (see package prim_kruskal)
//   - Connected components over a stream of edges
//   - Equivalence classes (aliasing, clustering, percolation)
//
// Complexity:
//
//   - New:   O(n)
//   - Find, Union, Connected: O(α(n)) amortised, α the inverse Ackermann function
//   - Sets:  O(n α(n))
//
// Errors:
//
//   - ErrNegativeSize     New called with n < 0
//   - ErrIndexOutOfRange  an element outside [0, n) was passed
//
// A DSU carries no lock; callers sharing one across goroutines must
// serialise access, since even Find mutates parent links.
package dsu
