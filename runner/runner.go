package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// task is the runner-side record of one submission. Every field but index,
// fn and done is guarded by Runner.mu; value and err are immutable once done
// is closed.
type task[T any] struct {
	index    int
	fn       Task[T]
	state    TaskState
	attempts int
	lastErr  error
	value    T
	err      error
	done     chan struct{}
}

// Runner runs submitted tasks with at most limit attempts in flight.
// All methods are safe for concurrent use.
type Runner[T any] struct {
	id    string
	limit int
	opts  Options
	log   *zap.Logger
	sem   *semaphore.Weighted

	// sched is cancelled by Cancel, or once Drain completes; it stops the
	// dispatcher, slot acquisition and backoff waits.
	sched     context.Context
	stopSched context.CancelFunc
	stopWatch func() bool

	wake chan struct{}

	mu        sync.Mutex
	state     State
	cancelled bool
	tasks     []*task[T] // submission order
	ready     []*task[T] // FIFO of tasks waiting for a slot
	running   int
	peak      int
}

// New returns a runner allowing limit concurrent attempts and starts its
// dispatcher. Returns ErrInvalidLimit for limit < 1, or the option error.
//
// Every runner must end with Drain or Cancel, which stop the dispatcher.
func New[T any](limit int, opts ...Option) (*Runner[T], error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	sched, stop := context.WithCancel(context.Background())
	r := &Runner[T]{
		id:        id,
		limit:     limit,
		opts:      o,
		log:       o.Logger.With(zap.String("runner", id)),
		sem:       semaphore.NewWeighted(int64(limit)),
		sched:     sched,
		stopSched: stop,
		wake:      make(chan struct{}, 1),
	}
	// Parent cancellation goes through Cancel so abandoned tasks are settled.
	r.stopWatch = context.AfterFunc(o.Ctx, r.Cancel)

	r.log.Debug("runner started",
		zap.Int("limit", limit),
		zap.Int("maxAttempts", o.MaxAttempts))
	go r.dispatch()

	return r, nil
}

// ID returns the runner's unique identifier, also attached to its log lines.
func (r *Runner[T]) ID() string { return r.id }

// Limit returns the concurrency cap.
func (r *Runner[T]) Limit() int { return r.limit }

// State returns the runner lifecycle state.
func (r *Runner[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// Submit enqueues fn and returns its handle. First attempts start in
// submission order. Returns ErrNilTask for a nil fn and ErrRunnerClosed once
// the runner is draining, completed or cancelled.
func (r *Runner[T]) Submit(fn Task[T]) (*Handle[T], error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	r.mu.Lock()
	if r.state != Accepting {
		st := r.state
		r.mu.Unlock()
		return nil, fmt.Errorf("%w (%s)", ErrRunnerClosed, st)
	}
	t := &task[T]{
		index: len(r.tasks),
		fn:    fn,
		done:  make(chan struct{}),
	}
	r.tasks = append(r.tasks, t)
	r.ready = append(r.ready, t)
	r.mu.Unlock()

	r.signal()
	r.log.Debug("task submitted", zap.Int("task", t.index))

	return &Handle[T]{r: r, t: t}, nil
}

// Drain stops accepting submissions, waits for every submitted task to
// settle and returns all results in submission order. The runner is then
// Completed.
//
// If ctx ends first, Drain returns a snapshot of the results so far together
// with ctx.Err(); the runner keeps draining and Drain may be called again.
func (r *Runner[T]) Drain(ctx context.Context) ([]Result[T], error) {
	r.mu.Lock()
	if r.state == Accepting {
		r.state = Draining
		r.log.Debug("runner draining", zap.Int("tasks", len(r.tasks)))
	}
	tasks := slices.Clone(r.tasks)
	r.mu.Unlock()

	for _, t := range tasks {
		select {
		case <-t.done:
		case <-ctx.Done():
			return r.Results(), ctx.Err()
		}
	}

	r.mu.Lock()
	r.state = Completed
	r.mu.Unlock()
	r.stopWatch()
	r.stopSched()

	st := r.Stats()
	r.log.Info("runner completed",
		zap.Int("succeeded", st.Succeeded),
		zap.Int("failed", st.Failed),
		zap.Int("peakRunning", st.PeakRunning))

	return r.Results(), nil
}

// Cancel stops starting new attempts and new retries. Attempts already
// running finish and their outcomes are recorded. Tasks still queued or
// waiting out a backoff fail with ErrRunnerCancelled. Cancel is idempotent.
func (r *Runner[T]) Cancel() {
	r.mu.Lock()
	if r.cancelled || r.state == Completed {
		r.mu.Unlock()
		return
	}
	r.cancelled = true
	r.state = Cancelled
	abandoned := r.ready
	r.ready = nil
	r.mu.Unlock()

	r.stopWatch()
	r.stopSched()
	for _, t := range abandoned {
		r.settleCancelled(t)
	}
	r.log.Info("runner cancelled", zap.Int("abandoned", len(abandoned)))
}

// Results returns a snapshot of every task outcome in submission order.
// Tasks not yet settled report their current state and a zero Value.
func (r *Runner[T]) Results() []Result[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Result[T], len(r.tasks))
	for i, t := range r.tasks {
		out[i] = Result[T]{
			Index:    t.index,
			Value:    t.value,
			Err:      t.err,
			Attempts: t.attempts,
			State:    t.state,
		}
	}

	return out
}

// Stats returns a snapshot of the runner counters.
func (r *Runner[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{
		ID:          r.id,
		State:       r.state,
		Submitted:   len(r.tasks),
		Running:     r.running,
		PeakRunning: r.peak,
	}
	for _, t := range r.tasks {
		switch t.state {
		case Pending:
			s.Pending++
		case Retrying:
			s.Retrying++
		case Succeeded:
			s.Succeeded++
		case Failed:
			s.Failed++
		}
	}

	return s
}

// dispatch is the single scheduler loop: it pops the next ready task,
// acquires a slot, and starts the attempt.
func (r *Runner[T]) dispatch() {
	for {
		t, ok := r.next()
		if !ok {
			return
		}
		if err := r.sem.Acquire(r.sched, 1); err != nil {
			// Only a cancelled scheduler makes Acquire fail.
			r.settleCancelled(t)
			continue
		}
		r.start(t)
	}
}

// next blocks until a ready task exists or the scheduler stops.
func (r *Runner[T]) next() (*task[T], bool) {
	for {
		r.mu.Lock()
		if len(r.ready) > 0 {
			t := r.ready[0]
			r.ready[0] = nil
			r.ready = r.ready[1:]
			r.mu.Unlock()
			return t, true
		}
		r.mu.Unlock()

		select {
		case <-r.wake:
		case <-r.sched.Done():
			return nil, false
		}
	}
}

// signal wakes the dispatcher without blocking.
func (r *Runner[T]) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// start moves t to Running while holding a slot, unless the runner was
// cancelled between Acquire and now.
func (r *Runner[T]) start(t *task[T]) {
	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		r.sem.Release(1)
		r.settleCancelled(t)
		return
	}
	t.state = Running
	t.attempts++
	attempt := t.attempts
	r.running++
	if r.running > r.peak {
		r.peak = r.running
	}
	r.mu.Unlock()

	r.log.Debug("attempt started", zap.Int("task", t.index), zap.Int("attempt", attempt))
	go r.run(t, attempt)
}

// run executes one attempt, releases its slot, and routes the outcome.
func (r *Runner[T]) run(t *task[T], attempt int) {
	v, err := call(r.opts.Ctx, t.fn, r.opts.AttemptTimeout)

	r.mu.Lock()
	r.running--
	r.mu.Unlock()
	r.sem.Release(1)

	if err == nil {
		r.settle(t, v, nil)
		return
	}

	r.mu.Lock()
	t.lastErr = err
	exhausted := attempt >= r.opts.MaxAttempts
	cancelled := r.cancelled
	if !exhausted && !cancelled {
		t.state = Retrying
	}
	r.mu.Unlock()

	switch {
	case exhausted:
		var zero T
		r.settle(t, zero, &TaskError{Index: t.index, Attempts: attempt, Err: err})
	case cancelled:
		r.settleCancelled(t)
	default:
		delay := r.opts.Backoff.Delay(attempt)
		r.log.Warn("attempt failed, retrying",
			zap.Int("task", t.index),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		go r.backoff(t, delay)
	}
}

// backoff waits out delay without holding a slot, then requeues t.
func (r *Runner[T]) backoff(t *task[T], delay time.Duration) {
	select {
	case <-r.opts.After(delay):
	case <-r.sched.Done():
		r.settleCancelled(t)
		return
	}

	r.mu.Lock()
	if r.cancelled {
		r.mu.Unlock()
		r.settleCancelled(t)
		return
	}
	r.ready = append(r.ready, t)
	r.mu.Unlock()
	r.signal()
}

// settle records the terminal outcome of t exactly once.
func (r *Runner[T]) settle(t *task[T], v T, err error) {
	r.mu.Lock()
	if t.state.Terminal() {
		r.mu.Unlock()
		return
	}
	t.value = v
	t.err = err
	if err == nil {
		t.state = Succeeded
	} else {
		t.state = Failed
	}
	attempts := t.attempts
	r.mu.Unlock()
	close(t.done)

	if err != nil {
		r.log.Warn("task failed",
			zap.Int("task", t.index),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return
	}
	r.log.Debug("task succeeded", zap.Int("task", t.index), zap.Int("attempts", attempts))
}

// settleCancelled fails t with ErrRunnerCancelled, keeping its last attempt
// error if it had one.
func (r *Runner[T]) settleCancelled(t *task[T]) {
	r.mu.Lock()
	cause := ErrRunnerCancelled
	if t.lastErr != nil {
		cause = errors.Join(ErrRunnerCancelled, t.lastErr)
	}
	attempts := t.attempts
	r.mu.Unlock()

	var zero T
	r.settle(t, zero, &TaskError{Index: t.index, Attempts: attempts, Err: cause})
}
