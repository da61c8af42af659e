package runner_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/corekit/runner"
)

// immediate is an After primitive that fires at once.
func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

// never is an After primitive that never fires.
func never(time.Duration) <-chan time.Time { return nil }

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func newRunner[T any](t *testing.T, limit int, opts ...runner.Option) *runner.Runner[T] {
	t.Helper()
	r, err := runner.New[T](limit, append([]runner.Option{runner.WithAfter(immediate)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(r.Cancel)

	return r
}

// flaky fails the first n calls, then returns v.
func flaky[T any](n int, v T) (runner.Task[T], *atomic.Int32) {
	calls := new(atomic.Int32)
	return func(context.Context) (T, error) {
		c := calls.Add(1)
		if int(c) <= n {
			var zero T
			return zero, fmt.Errorf("transient failure %d", c)
		}
		return v, nil
	}, calls
}

func TestNew_InvalidArguments(t *testing.T) {
	_, err := runner.New[int](0)
	assert.ErrorIs(t, err, runner.ErrInvalidLimit)

	_, err = runner.New[int](-3)
	assert.ErrorIs(t, err, runner.ErrInvalidLimit)

	_, err = runner.New[int](1, runner.WithMaxAttempts(0))
	assert.ErrorIs(t, err, runner.ErrInvalidAttempts)
}

func TestRunner_ConcurrencyCap(t *testing.T) {
	const limit, total = 2, 5
	r := newRunner[int](t, limit)

	var current, maxSeen atomic.Int32
	for i := 0; i < total; i++ {
		_, err := r.Submit(func(context.Context) (int, error) {
			n := current.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			current.Add(-1)
			return i, nil
		})
		require.NoError(t, err)
	}

	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	require.Len(t, res, total)
	for i, rr := range res {
		assert.NoError(t, rr.Err)
		assert.Equal(t, i, rr.Value)
	}
	assert.LessOrEqual(t, maxSeen.Load(), int32(limit))
	assert.LessOrEqual(t, r.Stats().PeakRunning, limit)
	assert.Equal(t, runner.Completed, r.State())
}

func TestRunner_RetryThenSucceed(t *testing.T) {
	r := newRunner[string](t, 1, runner.WithMaxAttempts(3))
	fn, calls := flaky(2, "ok")

	h, err := r.Submit(fn)
	require.NoError(t, err)

	v, err := h.Wait(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, h.Attempts())
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, runner.Succeeded, h.State())
}

func TestRunner_ExhaustedSiblingsComplete(t *testing.T) {
	r := newRunner[int](t, 2, runner.WithMaxAttempts(3))
	boom := errors.New("boom")

	var calls atomic.Int32
	bad, err := r.Submit(func(context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	})
	require.NoError(t, err)
	good, err := r.Submit(func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)

	_, err = bad.Wait(testCtx(t))
	assert.ErrorIs(t, err, runner.ErrTaskFailed)
	assert.ErrorIs(t, err, boom)
	var te *runner.TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Index)
	assert.Equal(t, 3, te.Attempts)
	assert.Equal(t, int32(3), calls.Load())

	v, err := good.Wait(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, runner.Failed, res[0].State)
	assert.Equal(t, runner.Succeeded, res[1].State)
}

func TestRunner_ResultsKeepSubmissionOrder(t *testing.T) {
	r := newRunner[string](t, 2)
	fastDone := make(chan struct{})

	_, err := r.Submit(func(context.Context) (string, error) {
		<-fastDone // finish strictly after the fast task
		return "slow", nil
	})
	require.NoError(t, err)
	fast, err := r.Submit(func(context.Context) (string, error) { return "fast", nil })
	require.NoError(t, err)

	_, err = fast.Wait(testCtx(t))
	require.NoError(t, err)
	close(fastDone)

	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "slow", res[0].Value)
	assert.Equal(t, "fast", res[1].Value)
	assert.Equal(t, 0, res[0].Index)
	assert.Equal(t, 1, res[1].Index)
}

// TestRunner_BackoffReleasesSlot checks that a task waiting out its backoff
// does not hold the only slot.
func TestRunner_BackoffReleasesSlot(t *testing.T) {
	gate := make(chan time.Time)
	delays := make(chan time.Duration, 1)
	after := func(d time.Duration) <-chan time.Time {
		delays <- d
		return gate
	}
	r, err := runner.New[string](1,
		runner.WithAfter(after),
		runner.WithBackoff(runner.Constant(time.Hour)))
	require.NoError(t, err)
	t.Cleanup(r.Cancel)

	retrying, _ := flaky(1, "second try")
	a, err := r.Submit(retrying)
	require.NoError(t, err)
	b, err := r.Submit(func(context.Context) (string, error) { return "sibling", nil })
	require.NoError(t, err)

	assert.Equal(t, time.Hour, <-delays)
	v, err := b.Wait(testCtx(t))
	require.NoError(t, err, "sibling must run while the first task backs off")
	assert.Equal(t, "sibling", v)
	assert.Equal(t, runner.Retrying, a.State())

	gate <- time.Now()
	v, err = a.Wait(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "second try", v)
	assert.Equal(t, 2, a.Attempts())
}

func TestRunner_Cancel(t *testing.T) {
	r := newRunner[int](t, 1)
	started := make(chan struct{})
	release := make(chan struct{})

	running, err := r.Submit(func(context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	require.NoError(t, err)
	queued1, err := r.Submit(func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	queued2, err := r.Submit(func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)

	<-started
	r.Cancel()
	r.Cancel() // idempotent
	assert.Equal(t, runner.Cancelled, r.State())

	_, err = r.Submit(func(context.Context) (int, error) { return 4, nil })
	assert.ErrorIs(t, err, runner.ErrRunnerClosed)

	for _, h := range []*runner.Handle[int]{queued1, queued2} {
		_, err := h.Wait(testCtx(t))
		assert.ErrorIs(t, err, runner.ErrRunnerCancelled)
		assert.ErrorIs(t, err, runner.ErrTaskFailed)
		assert.Equal(t, 0, h.Attempts())
	}

	close(release)
	v, err := running.Wait(testCtx(t))
	require.NoError(t, err, "running task is allowed to finish")
	assert.Equal(t, 1, v)

	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, runner.Succeeded, res[0].State)
	assert.Equal(t, runner.Failed, res[1].State)
	assert.Equal(t, runner.Failed, res[2].State)
}

func TestRunner_CancelDuringBackoff(t *testing.T) {
	waiting := make(chan struct{}, 1)
	after := func(time.Duration) <-chan time.Time {
		waiting <- struct{}{}
		return nil
	}
	r, err := runner.New[int](1, runner.WithAfter(after))
	require.NoError(t, err)

	boom := errors.New("boom")
	h, err := r.Submit(func(context.Context) (int, error) { return 0, boom })
	require.NoError(t, err)

	<-waiting
	r.Cancel()

	_, err = h.Wait(testCtx(t))
	assert.ErrorIs(t, err, runner.ErrRunnerCancelled)
	assert.ErrorIs(t, err, boom, "last attempt error is kept")
	assert.Equal(t, 1, h.Attempts())
}

func TestRunner_FailureAfterCancelIsNotRetried(t *testing.T) {
	r := newRunner[int](t, 1)
	started := make(chan struct{})
	release := make(chan struct{})
	boom := errors.New("boom")

	var calls atomic.Int32
	h, err := r.Submit(func(context.Context) (int, error) {
		calls.Add(1)
		close(started)
		<-release
		return 0, boom
	})
	require.NoError(t, err)

	<-started
	r.Cancel()
	close(release)

	_, err = h.Wait(testCtx(t))
	assert.ErrorIs(t, err, runner.ErrRunnerCancelled)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunner_SubmitValidation(t *testing.T) {
	r := newRunner[int](t, 1)

	_, err := r.Submit(nil)
	assert.ErrorIs(t, err, runner.ErrNilTask)

	_, err = r.Drain(testCtx(t))
	require.NoError(t, err)

	_, err = r.Submit(func(context.Context) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, runner.ErrRunnerClosed)
}

func TestRunner_DrainEmpty(t *testing.T) {
	r := newRunner[int](t, 3)
	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, runner.Completed, r.State())
}

func TestRunner_PanicIsFailedAttempt(t *testing.T) {
	r := newRunner[int](t, 1, runner.WithMaxAttempts(2))
	var calls atomic.Int32
	h, err := r.Submit(func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			panic("kaboom")
		}
		return 5, nil
	})
	require.NoError(t, err)

	v, err := h.Wait(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	h, err = r.Submit(func(context.Context) (int, error) { panic("always") })
	require.NoError(t, err)
	_, err = h.Wait(testCtx(t))
	assert.ErrorIs(t, err, runner.ErrTaskPanicked)
	assert.Contains(t, err.Error(), "always")
}

func TestRunner_ParentContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, err := runner.New[int](1, runner.WithContext(ctx), runner.WithAfter(never))
	require.NoError(t, err)

	started := make(chan struct{})
	_, err = r.Submit(func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})
	require.NoError(t, err)
	queued, err := r.Submit(func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	<-started
	cancel()

	_, err = queued.Wait(testCtx(t))
	assert.ErrorIs(t, err, runner.ErrRunnerCancelled)

	res, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.ErrorIs(t, res[0].Err, context.Canceled)
	assert.Equal(t, runner.Completed, r.State())
}

func TestRunner_DrainTimeoutReturnsSnapshot(t *testing.T) {
	r := newRunner[int](t, 2)
	release := make(chan struct{})

	_, err := r.Submit(func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	require.NoError(t, err)
	quick, err := r.Submit(func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	_, err = quick.Wait(testCtx(t))
	require.NoError(t, err)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res, err := r.Drain(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, res, 2)
	assert.Equal(t, runner.Running, res[0].State)
	assert.Equal(t, runner.Succeeded, res[1].State)
	assert.Equal(t, runner.Draining, r.State())

	close(release)
	res, err = r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 1, res[0].Value)
}

func TestHandle_WaitContext(t *testing.T) {
	r := newRunner[int](t, 1)
	release := make(chan struct{})
	defer close(release)

	h, err := r.Submit(func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, h.Index())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-h.Done():
		t.Fatal("task must still be running")
	default:
	}
}

func TestRunner_Stats(t *testing.T) {
	r := newRunner[int](t, 3, runner.WithMaxAttempts(1))
	for i := 0; i < 4; i++ {
		_, err := r.Submit(func(context.Context) (int, error) {
			if i%2 == 0 {
				return 0, errors.New("even")
			}
			return i, nil
		})
		require.NoError(t, err)
	}
	_, err := r.Drain(testCtx(t))
	require.NoError(t, err)

	st := r.Stats()
	assert.Equal(t, r.ID(), st.ID)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, 4, st.Submitted)
	assert.Equal(t, 2, st.Succeeded)
	assert.Equal(t, 2, st.Failed)
	assert.Equal(t, 0, st.Running)
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, 3, r.Limit())
}

// TestRunner_FirstAttemptsStartInOrder uses limit 1 so start order is
// observable.
func TestRunner_FirstAttemptsStartInOrder(t *testing.T) {
	r := newRunner[int](t, 1)
	var mu sync.Mutex
	var order []int
	for i := 0; i < 10; i++ {
		_, err := r.Submit(func(context.Context) (int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		})
		require.NoError(t, err)
	}
	_, err := r.Drain(testCtx(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestRunner_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newRunner[int](t, 1, runner.WithLogger(zap.New(core)), runner.WithMaxAttempts(3))

	fn, _ := flaky(2, 9)
	h, err := r.Submit(fn)
	require.NoError(t, err)
	_, err = h.Wait(testCtx(t))
	require.NoError(t, err)
	_, err = r.Drain(testCtx(t))
	require.NoError(t, err)

	retries := logs.FilterMessage("attempt failed, retrying").All()
	require.Len(t, retries, 2)
	assert.Equal(t, zapcore.WarnLevel, retries[0].Level)
	fields := retries[0].ContextMap()
	assert.Equal(t, r.ID(), fields["runner"])
	assert.EqualValues(t, 1, fields["attempt"])
	assert.Equal(t, 1, logs.FilterMessage("runner completed").Len())
}

func TestTaskState_String(t *testing.T) {
	assert.Equal(t, "pending", runner.Pending.String())
	assert.Equal(t, "retrying", runner.Retrying.String())
	assert.Equal(t, "TaskState(42)", runner.TaskState(42).String())
	assert.True(t, runner.Failed.Terminal())
	assert.False(t, runner.Running.Terminal())
	assert.Equal(t, "draining", runner.Draining.String())
}
