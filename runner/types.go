package runner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidLimit indicates a concurrency limit below 1.
	ErrInvalidLimit = errors.New("runner: concurrency limit must be positive")

	// ErrInvalidAttempts indicates a max-attempts value below 1.
	ErrInvalidAttempts = errors.New("runner: max attempts must be positive")

	// ErrNilTask is returned by Submit for a nil task.
	ErrNilTask = errors.New("runner: task is nil")

	// ErrRunnerClosed is returned by Submit once the runner is draining,
	// completed or cancelled.
	ErrRunnerClosed = errors.New("runner: runner is closed")

	// ErrTaskFailed matches every terminal task failure via errors.Is.
	ErrTaskFailed = errors.New("runner: task failed")

	// ErrRunnerCancelled marks tasks abandoned because the runner was
	// cancelled before they could finish.
	ErrRunnerCancelled = errors.New("runner: runner cancelled")

	// ErrTaskPanicked wraps a value recovered from a panicking attempt.
	ErrTaskPanicked = errors.New("runner: task panicked")

	// ErrInvalidTimeout indicates a negative attempt timeout.
	ErrInvalidTimeout = errors.New("runner: attempt timeout must not be negative")

	// ErrAttemptTimeout marks an attempt that failed after its time limit
	// expired.
	ErrAttemptTimeout = errors.New("runner: attempt timed out")

	// ErrPollExhausted is returned by Poll when the condition never held.
	ErrPollExhausted = errors.New("runner: condition not met")
)

// Task is a unit of work. It receives the runner's task context, which is
// not cancelled by Cancel: running attempts are allowed to finish.
type Task[T any] func(ctx context.Context) (T, error)

// TaskState is a task's position in its state machine.
type TaskState int

const (
	Pending TaskState = iota
	Running
	Retrying
	Succeeded
	Failed
)

func (s TaskState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Retrying:
		return "retrying"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("TaskState(%d)", int(s))
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s TaskState) Terminal() bool { return s == Succeeded || s == Failed }

// State is the runner-level lifecycle.
type State int

const (
	Accepting State = iota
	Draining
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Accepting:
		return "accepting"
	case Draining:
		return "draining"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TaskError is the terminal failure of one task.
// errors.Is(err, ErrTaskFailed) holds, and errors.Is/As also see Err.
type TaskError struct {
	Index    int   // submission index
	Attempts int   // attempts actually started
	Err      error // last attempt error, or ErrRunnerCancelled joined with it
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("runner: task %d failed after %d attempt(s): %v", e.Index, e.Attempts, e.Err)
}

// Unwrap exposes both ErrTaskFailed and the underlying cause.
func (e *TaskError) Unwrap() []error { return []error{ErrTaskFailed, e.Err} }

// Result is the settled outcome of one task.
type Result[T any] struct {
	Index    int
	Value    T
	Err      error // nil on success, *TaskError otherwise
	Attempts int
	State    TaskState
}

// Stats is a point-in-time snapshot of runner counters.
type Stats struct {
	ID          string
	State       State
	Submitted   int
	Pending     int
	Running     int
	Retrying    int
	Succeeded   int
	Failed      int
	PeakRunning int // highest number of attempts observed running at once
}

// After is the timer primitive used for backoff: it delivers a value once
// d has elapsed. time.After satisfies it.
type After func(d time.Duration) <-chan time.Time
