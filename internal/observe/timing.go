package observe

import "time"

// Clock is the time source for Timing. Tests swap in a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timing records start/end timestamps only
type Timing struct {
	clock       Clock
	StartedAt   time.Time
	CompletedAt time.Time
}

// NewTiming starts a timing on the wall clock
func NewTiming() *Timing {
	return StartTiming(SystemClock{})
}

// StartTiming starts a timing on the given clock
func StartTiming(clock Clock) *Timing {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timing{
		clock:     clock,
		StartedAt: clock.Now(),
	}
}

// Complete records completion time. Only the first call counts.
func (t *Timing) Complete() {
	if !t.CompletedAt.IsZero() {
		return
	}
	t.CompletedAt = t.clock.Now()
}

// Duration returns execution duration, or the time elapsed so far if the
// timing has not completed. Never negative.
func (t *Timing) Duration() time.Duration {
	end := t.CompletedAt
	if end.IsZero() {
		end = t.clock.Now()
	}
	d := end.Sub(t.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}
