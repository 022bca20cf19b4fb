// Package clock abstracts "now" so house rules such as the same-day lead time are testable.
package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

func NewRealClock() Clock {
	return Func(time.Now)
}

// MockClock only moves when told to. Safe for concurrent use.
type MockClock struct {
	now atomic.Pointer[time.Time]
}

func NewMockClock(t time.Time) *MockClock {
	c := &MockClock{}
	c.Set(t)
	return c
}

func (c *MockClock) Now() time.Time {
	return *c.now.Load()
}

func (c *MockClock) Set(t time.Time) {
	c.now.Store(&t)
}

// Add advances the clock. Concurrent Adds may lose an update; tests advance from one goroutine.
func (c *MockClock) Add(d time.Duration) {
	c.Set(c.Now().Add(d))
}
