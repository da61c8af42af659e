// Package corekit is a small toolkit of classic building blocks: a binary
// min-heap, a disjoint-set-union, directed-graph traversal and ordering,
// minimum spanning trees, and a bounded-concurrency task runner with retry.
//
// Everything lives in flat subpackages, one concern each:
//
//	heap/         generic binary min-heap (Insert, ExtractMin, Peek, O(n) heapify)
//	dsu/          union-find with union by rank and full path compression
//	core/         generic directed adjacency list, insertion-ordered
//	dfs/          depth-first traversal, cycle detection, topological sort
//	bfs/          breadth-first traversal, depths, shortest-hop paths
//	prim_kruskal/ minimum spanning trees over a weighted network
//	runner/       bounded concurrency, per-task retry with backoff, ordered results
//
// The data-structure packages are not safe for concurrent mutation; the
// traversal functions keep all state per call, so they may run concurrently
// over a graph that is no longer being changed. runner is safe for concurrent
// use and logs through go.uber.org/zap.
//
// See examples/ for runnable end-to-end scenarios.
package corekit
