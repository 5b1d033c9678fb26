package game

import "time"

// StepsDue is the scheduling policy of the fixed-step loop: how many steps
// must run now so that done catches up with elapsed at tickRate. It never
// returns a fractional step and never asks to rewind.
func StepsDue(elapsed time.Duration, tickRate int, done uint64) uint64 {
	if elapsed <= 0 || tickRate <= 0 {
		return 0
	}
	total := uint64(elapsed / time.Second * time.Duration(tickRate))
	total += uint64((elapsed % time.Second) * time.Duration(tickRate) / time.Second)
	if total <= done {
		return 0
	}
	return total - done
}

// Clock reports monotonic time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type wallClock struct {
	start time.Time
}

func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock returns T and then advances it by Tick on every call.
type ManualClock struct {
	T    time.Duration
	Tick time.Duration
}

func (c *ManualClock) Now() time.Duration {
	now := c.T
	c.T += c.Tick
	return now
}
