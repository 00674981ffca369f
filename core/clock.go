package core

import (
	"github.com/jonboulle/clockwork"
)

// Clock is the time source of the ledger, in unix seconds. Well-behaved
// deployments never go backwards, but consumers must tolerate it.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 {
	return f()
}

type wallClock struct {
	clock clockwork.Clock
}

// NewClock adapts a clockwork clock, real or fake.
func NewClock(clock clockwork.Clock) Clock {
	return &wallClock{clock: clock}
}

// NewSystemClock returns a Clock backed by the system time.
func NewSystemClock() Clock {
	return NewClock(clockwork.NewRealClock())
}

func (c *wallClock) Now() int64 {
	return c.clock.Now().Unix()
}
