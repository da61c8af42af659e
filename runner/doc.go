// Package runner executes a stream of tasks with a concurrency cap,
// per-task retry with backoff, and results aggregated in submission order.
//
// Lifecycle:
//
//	r, _ := runner.New[int](2, runner.WithMaxAttempts(3))
//	h, _ := r.Submit(task)  // Accepting
//	v, err := h.Wait(ctx)   // await one task
//	res, _ := r.Drain(ctx)  // Draining -> Completed, results by index
//
// Task states:
//
//	Pending -> Running -> Succeeded
//	                   -> Retrying -> Running ...
//	                   -> Failed
//
// Scheduling:
//
//   - One dispatcher goroutine pops a FIFO ready queue and acquires a slot
//     from a weighted semaphore before starting each attempt, so at most
//     limit attempts ever run at once and first attempts start in
//     submission order.
//   - A settling attempt releases its slot straight away, which wakes the
//     dispatcher; nothing polls.
//   - A failed attempt with attempts left moves to Retrying and waits its
//     backoff without holding a slot, then rejoins the ready queue.
//
// Failure isolation: one task's terminal failure never affects its siblings
// or the runner. Panics inside a task are recovered as failed attempts.
//
// Cancellation: Cancel stops new attempts. Running attempts finish and are
// recorded; tasks that never started, or were waiting out a backoff, fail
// with ErrRunnerCancelled.
//
// Errors:
//
//   - ErrInvalidLimit, ErrInvalidAttempts  bad construction parameters
//   - ErrNilTask                           Submit(nil)
//   - ErrRunnerClosed                      Submit after Drain or Cancel
//   - ErrTaskFailed / *TaskError           terminal task failure
//   - ErrRunnerCancelled                   task abandoned by Cancel
//   - ErrTaskPanicked                      attempt panicked
//   - ErrInvalidTimeout, ErrAttemptTimeout negative limit, attempt past its deadline
//   - ErrPollExhausted                     Poll condition never held
package runner
