package observe

import (
	"testing"
	"time"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestTimingDuration(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0), step: 250 * time.Millisecond}

	timing := StartTiming(clock)
	timing.Complete()

	if got := timing.Duration(); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", got)
	}
}

func TestTimingCompleteIsIdempotent(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0), step: time.Second}

	timing := StartTiming(clock)
	timing.Complete()
	first := timing.CompletedAt
	timing.Complete()

	if !timing.CompletedAt.Equal(first) {
		t.Errorf("Complete moved the end time: %v -> %v", first, timing.CompletedAt)
	}
	if got := timing.Duration(); got != time.Second {
		t.Errorf("Expected 1s, got %v", got)
	}
}

func TestTimingNeverNegative(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0), step: -time.Second}

	timing := StartTiming(clock)
	timing.Complete()

	if got := timing.Duration(); got != 0 {
		t.Errorf("Expected 0 for a clock that went backwards, got %v", got)
	}
}

func TestNewTimingUsesWallClock(t *testing.T) {
	before := time.Now()
	timing := NewTiming()
	if timing.StartedAt.Before(before) {
		t.Errorf("StartedAt %v is before %v", timing.StartedAt, before)
	}
	if timing.Duration() < 0 {
		t.Error("Duration should not be negative while running")
	}
}
