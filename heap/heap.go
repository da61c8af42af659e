package heap

import "cmp"

// MinHeap is a binary min-heap of T ordered by less.
// The zero value is not usable; construct with New or NewFunc.
type MinHeap[T any] struct {
	items []T
	less  LessFunc[T]
}

// New returns a min-heap ordered by the natural < of T, seeded with items.
// The items slice is copied, never retained.
//
// Complexity: O(n) for n initial items.
func New[T cmp.Ordered](items ...T) *MinHeap[T] {
	return NewFunc(cmp.Less[T], items...)
}

// NewFunc returns a min-heap ordered by less, seeded with items.
// A nil less panics, like sort.Slice with a nil function would.
//
// Complexity: O(n) for n initial items.
func NewFunc[T any](less LessFunc[T], items ...T) *MinHeap[T] {
	if less == nil {
		panic("heap: nil less function")
	}
	h := &MinHeap[T]{
		items: append(make([]T, 0, len(items)), items...),
		less:  less,
	}
	// Bottom-up heapify: every leaf already satisfies the invariant,
	// so sift down each internal node from the last one to the root.
	for i := parent(len(h.items) - 1); i >= 0; i-- {
		h.siftDown(i)
	}

	return h
}

// Len returns the number of elements in the heap.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// IsEmpty reports whether the heap holds no elements.
func (h *MinHeap[T]) IsEmpty() bool { return len(h.items) == 0 }

// Insert adds v to the heap.
//
// Steps:
//  1. Append v at the end (the next free leaf).
//  2. Swap it with its parent while the parent is greater.
//
// Complexity: O(log n).
func (h *MinHeap[T]) Insert(v T) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// Peek returns the minimum without removing it.
// Returns ErrEmptyHeap if the heap is empty.
//
// Complexity: O(1).
func (h *MinHeap[T]) Peek() (T, error) {
	if len(h.items) == 0 {
		var zero T
		return zero, ErrEmptyHeap
	}

	return h.items[0], nil
}

// ExtractMin removes and returns the minimum.
// Returns ErrEmptyHeap if the heap is empty.
//
// Steps:
//  1. Save the root.
//  2. Move the last element to the root and shrink by one.
//  3. Swap the new root with its smaller child while that child is smaller.
//
// Complexity: O(log n).
func (h *MinHeap[T]) ExtractMin() (T, error) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, ErrEmptyHeap
	}

	minV := h.items[0]
	last := n - 1
	h.items[0] = h.items[last]
	h.items[last] = zero // drop the reference held by the vacated slot
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}

	return minV, nil
}

// Drain extracts every element, returning them in non-decreasing order.
// The heap is empty afterwards.
//
// Complexity: O(n log n).
func (h *MinHeap[T]) Drain() []T {
	out := make([]T, 0, len(h.items))
	for len(h.items) > 0 {
		v, _ := h.ExtractMin()
		out = append(out, v)
	}

	return out
}

// Clone returns an independent copy sharing the same ordering.
func (h *MinHeap[T]) Clone() *MinHeap[T] {
	return &MinHeap[T]{
		items: append(make([]T, 0, len(h.items)), h.items...),
		less:  h.less,
	}
}

// siftUp restores the invariant for a freshly placed element at i.
func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		p := parent(i)
		if !h.less(h.items[i], h.items[p]) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

// siftDown pushes the element at i toward the leaves until both children
// are no smaller than it.
func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		if l := left(i); l < n && h.less(h.items[l], h.items[smallest]) {
			smallest = l
		}
		if r := right(i); r < n && h.less(h.items[r], h.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
