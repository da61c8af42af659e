package runner

import (
	"math"
	"time"
)

// Backoff decides how long to wait before the next attempt.
// attempt is the number of the attempt that just failed, starting at 1.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// BackoffFunc adapts a plain function to Backoff.
type BackoffFunc func(attempt int) time.Duration

// Delay calls f.
func (f BackoffFunc) Delay(attempt int) time.Duration { return f(attempt) }

// Constant waits the same duration before every retry.
type Constant time.Duration

// Delay returns c regardless of attempt.
func (c Constant) Delay(int) time.Duration { return time.Duration(c) }

// Exponential waits Base * Factor^(attempt-1), capped at Max when Max > 0.
// A Factor below 1 is treated as 2.
type Exponential struct {
	Base   time.Duration
	Factor float64
	Max    time.Duration
}

// Delay returns the capped exponential delay for attempt.
func (e Exponential) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	f := e.Factor
	if f < 1 {
		f = 2
	}
	d := float64(e.Base) * math.Pow(f, float64(attempt-1))
	if e.Max > 0 && d > float64(e.Max) {
		return e.Max
	}
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(d)
}
