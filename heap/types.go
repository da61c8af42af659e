package heap

import "errors"

// ErrEmptyHeap is returned by ExtractMin and Peek when the heap holds no elements.
var ErrEmptyHeap = errors.New("heap: heap is empty")

// LessFunc reports whether a must sort before b.
// It must describe a strict weak ordering.
type LessFunc[T any] func(a, b T) bool

// parent, left and right map slice positions of the implicit binary tree.
func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }
