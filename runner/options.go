package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Default policy values.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = Constant(time.Second)
)

// Option configures a Runner, Retry or All.
type Option func(*Options)

// Options holds the retry policy and collaborators of a runner.
type Options struct {
	// MaxAttempts bounds how many times a task is started, first run included.
	MaxAttempts int

	// Backoff computes the wait between a failed attempt and the next one.
	Backoff Backoff

	// After is the timer primitive used to wait out a backoff.
	After After

	// Ctx is the parent of every task context. Its cancellation cancels the
	// runner.
	Ctx context.Context

	// Logger receives lifecycle and failure events.
	Logger *zap.Logger

	// AttemptTimeout limits each attempt through its context. Zero means no
	// limit.
	AttemptTimeout time.Duration

	err error
}

// DefaultOptions returns 3 attempts, a constant 1s backoff, time.After,
// a background context and a no-op logger.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		After:       time.After,
		Ctx:         context.Background(),
		Logger:      zap.NewNop(),
	}
}

// WithMaxAttempts sets the attempt budget per task. n < 1 is recorded and
// surfaced as ErrInvalidAttempts.
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: %d", ErrInvalidAttempts, n)
			return
		}
		o.MaxAttempts = n
	}
}

// WithBackoff sets the retry delay policy. A nil Backoff has no effect.
func WithBackoff(b Backoff) Option {
	return func(o *Options) {
		if b != nil {
			o.Backoff = b
		}
	}
}

// WithAfter replaces the timer primitive, e.g. with a fake clock in tests.
func WithAfter(after After) Option {
	return func(o *Options) {
		if after != nil {
			o.After = after
		}
	}
}

// WithContext sets the parent context for tasks. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithAttemptTimeout bounds every attempt with a context deadline of d.
// Tasks must honour ctx for the limit to take effect. A failed attempt whose
// deadline passed matches ErrAttemptTimeout and is retried like any other
// failure. d < 0 is surfaced as ErrInvalidTimeout; 0 removes the limit.
func WithAttemptTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: %s", ErrInvalidTimeout, d)
			return
		}
		o.AttemptTimeout = d
	}
}

// WithLogger sets the logger. A nil logger has no effect.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}
