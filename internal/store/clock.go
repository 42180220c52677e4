package store

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

// MonotonicClock returns UTC wall time that strictly increases between calls,
// so an update always moves updated_at forward even within one clock tick.
type MonotonicClock struct {
	last atomic.Int64
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

func (c *MonotonicClock) Now() time.Time {
	for {
		last := c.last.Load()
		now := time.Now().UnixNano()
		if now <= last {
			now = last + 1
		}
		if c.last.CompareAndSwap(last, now) {
			return time.Unix(0, now).UTC()
		}
	}
}
