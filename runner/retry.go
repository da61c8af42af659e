package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Retry calls fn until it succeeds or the attempt budget is spent, waiting
// the configured backoff between attempts. It runs on the caller's goroutine.
// The WithContext option is ignored; ctx is used both for fn and to abort
// a backoff wait.
//
// Terminal failures are *TaskError values (Index 0) matching ErrTaskFailed.
func Retry[T any](ctx context.Context, fn Task[T], opts ...Option) (T, error) {
	var zero T
	if fn == nil {
		return zero, ErrNilTask
	}
	o, err := buildOptions(opts)
	if err != nil {
		return zero, err
	}

	var last error
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		v, err := call(ctx, fn, o.AttemptTimeout)
		if err == nil {
			return v, nil
		}
		last = err
		if attempt == o.MaxAttempts {
			break
		}

		delay := o.Backoff.Delay(attempt)
		o.Logger.Warn("attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		select {
		case <-o.After(delay):
		case <-ctx.Done():
			return zero, &TaskError{Attempts: attempt, Err: errors.Join(ctx.Err(), last)}
		}
	}

	return zero, &TaskError{Attempts: o.MaxAttempts, Err: last}
}

// All runs every task on a fresh runner limited to limit concurrent
// attempts, then drains it. Results follow the order of tasks; individual
// failures are reported per Result, never as the returned error.
//
// The returned error is reserved for construction problems and for ctx
// ending early, in which case the partial results are returned with it.
func All[T any](ctx context.Context, limit int, tasks []Task[T], opts ...Option) ([]Result[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := New[T](limit, append(slices.Clip(opts), WithContext(ctx))...)
	if err != nil {
		return nil, err
	}
	for i, fn := range tasks {
		if _, err := r.Submit(fn); err != nil {
			r.Cancel()
			return nil, fmt.Errorf("runner: submit task %d: %w", i, err)
		}
	}

	return r.Drain(ctx)
}

// Poll calls fn until done accepts its value, waiting Backoff.Delay between
// calls, for at most MaxAttempts calls. An error from fn ends polling at
// once. When the attempts run out Poll returns the last value with
// ErrPollExhausted; when ctx ends during a wait it returns ctx.Err().
func Poll[T any](ctx context.Context, fn Task[T], done func(T) bool, opts ...Option) (T, error) {
	var zero T
	if fn == nil || done == nil {
		return zero, ErrNilTask
	}
	o, err := buildOptions(opts)
	if err != nil {
		return zero, err
	}

	var last T
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		v, err := call(ctx, fn, o.AttemptTimeout)
		if err != nil {
			return zero, err
		}
		if done(v) {
			return v, nil
		}
		last = v
		if attempt == o.MaxAttempts {
			break
		}

		delay := o.Backoff.Delay(attempt)
		o.Logger.Debug("condition not met, polling again",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))
		select {
		case <-o.After(delay):
		case <-ctx.Done():
			return last, ctx.Err()
		}
	}

	return last, fmt.Errorf("%w after %d attempt(s)", ErrPollExhausted, o.MaxAttempts)
}

// call invokes fn under an optional per-attempt deadline, converting a panic
// into an error.
func call[T any](ctx context.Context, fn Task[T], timeout time.Duration) (v T, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, timeout, ErrAttemptTimeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
		if err != nil && timeout > 0 && context.Cause(ctx) == ErrAttemptTimeout {
			err = fmt.Errorf("%w after %s: %w", ErrAttemptTimeout, timeout, err)
		}
	}()

	return fn(ctx)
}
