package runner

import "context"

// Handle is the caller's view of one submitted task.
type Handle[T any] struct {
	r *Runner[T]
	t *task[T]
}

// Index returns the task's submission index.
func (h *Handle[T]) Index() int { return h.t.index }

// Done is closed once the task reaches Succeeded or Failed.
func (h *Handle[T]) Done() <-chan struct{} { return h.t.done }

// Wait blocks until the task settles or ctx ends. It returns the task's
// value, or its *TaskError after retries are exhausted. If ctx ends first,
// ctx.Err() is returned and the task keeps running.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.t.done:
		return h.t.value, h.t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// State returns the task's current state.
func (h *Handle[T]) State() TaskState {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()

	return h.t.state
}

// Attempts returns how many attempts have started so far.
func (h *Handle[T]) Attempts() int {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()

	return h.t.attempts
}
