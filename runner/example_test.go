package runner_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/corekit/runner"
)

// ExampleRunner submits three jobs to a runner limited to two concurrent
// attempts. The second job fails once and is retried.
func ExampleRunner() {
	r, err := runner.New[string](2,
		runner.WithMaxAttempts(3),
		runner.WithBackoff(runner.Constant(time.Millisecond)))
	if err != nil {
		fmt.Println(err)
		return
	}

	failedOnce := false
	jobs := []runner.Task[string]{
		func(context.Context) (string, error) { return "alpha", nil },
		func(context.Context) (string, error) {
			if !failedOnce {
				failedOnce = true
				return "", errors.New("flaky")
			}
			return "beta", nil
		},
		func(context.Context) (string, error) { return "gamma", nil },
	}
	for _, job := range jobs {
		if _, err := r.Submit(job); err != nil {
			fmt.Println(err)
			return
		}
	}

	results, err := r.Drain(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, res := range results {
		fmt.Printf("%d %s %s attempts=%d\n", res.Index, res.State, res.Value, res.Attempts)
	}
	// Output:
	// 0 succeeded alpha attempts=1
	// 1 succeeded beta attempts=2
	// 2 succeeded gamma attempts=1
}

// ExampleRetry retries a single call with exponential backoff.
func ExampleRetry() {
	calls := 0
	v, err := runner.Retry(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("not yet")
		}
		return calls, nil
	}, runner.WithBackoff(runner.Exponential{Base: time.Millisecond, Max: 5 * time.Millisecond}))

	fmt.Println(v, err)
	// Output: 3 <nil>
}

// ExampleAll shows that a failing task does not affect its siblings.
func ExampleAll() {
	tasks := []runner.Task[int]{
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { return 0, errors.New("bad input") },
		func(context.Context) (int, error) { return 3, nil },
	}
	results, _ := runner.All(context.Background(), 2, tasks, runner.WithMaxAttempts(1))
	for _, res := range results {
		if res.Err != nil {
			fmt.Println(res.Index, errors.Is(res.Err, runner.ErrTaskFailed))
			continue
		}
		fmt.Println(res.Index, res.Value)
	}
	// Output:
	// 0 1
	// 1 true
	// 2 3
}
