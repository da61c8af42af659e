// Package heap implements a generic binary min-heap backed by a slice.
//
// What:
//
//   - MinHeap[T]: priority container whose root (index 0) is always the
//     minimum under the configured ordering.
//   - Insert appends and sifts up; ExtractMin moves the last element to the
//     root and sifts down; Peek reads the root without mutation.
//   - Construction from an initial sequence heapifies bottom-up in O(n).
//
// Why:
//
//   - Frontier for best-first searches (Prim, Dijkstra, A*)
//   - Scheduling by deadline or priority
//   - k-way merges and streaming top-k
//
// Ordering:
//
//   - New[T cmp.Ordered] uses the natural < ordering.
//   - NewFunc accepts any strict-weak "less" function, e.g. by weight or deadline.
//
// Invariant:
//
//	for every i > 0:  !less(h[i], h[(i-1)/2])
//
// Complexity:
//
//   - Insert, ExtractMin: O(log n) comparisons and swaps
//   - Peek, Len:          O(1)
//   - New / NewFunc:      O(n) heapify
//
// Errors:
//
//   - ErrEmptyHeap  ExtractMin or Peek on an empty heap
//
// A MinHeap is not safe for concurrent use; callers sharing one across
// goroutines must serialise access themselves.
package heap
