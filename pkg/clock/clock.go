package clock

import (
	"errors"
	"sync"
	"time"

	clockapi "github.com/jonboulle/clockwork"
)

var (
	globalClock clockapi.Clock = clockapi.NewRealClock()
	mu          sync.Mutex
)

// Set the globalClock to a new mock clock at the specified time.Time.
func Set(t time.Time) {
	mu.Lock()
	defer mu.Unlock()

	globalClock = clockapi.NewFakeClockAt(t)
}

// Add moves the mocked global clock forward the given time.Duration.
// It will error if the global clock is not mocked.
func Add(d time.Duration) error {
	mu.Lock()
	defer mu.Unlock()

	mock, ok := globalClock.(clockapi.FakeClock)
	if !ok {
		return errors.New("time not mocked")
	}
	mock.Advance(d)
	return nil
}

// Reset sets the global clock back to a pure time implementation.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	globalClock = clockapi.NewRealClock()
}

// Clock is a non-package level wrapper around time that supports stubbing.
// It prefers its localized stub (allowing for parallelized unit tests where
// package level stubbing would cause issues), falling back to the package
// level clock. With nothing stubbed it behaves as the time package does.
//
// Token expiry and cookie lifetimes are computed through a Clock so tests
// can move time instead of sleeping.
type Clock struct {
	mock clockapi.FakeClock
}

// Set sets the Clock to a new mock clock at the specified time.Time.
func (c *Clock) Set(t time.Time) {
	c.mock = clockapi.NewFakeClockAt(t)
}

// Add moves the clock forward time.Duration if it is mocked.
// It will error if the clock is not mocked.
func (c *Clock) Add(d time.Duration) error {
	if c.mock == nil {
		return errors.New("clock not mocked")
	}
	c.mock.Advance(d)
	return nil
}

// Reset removes the local stub.
func (c *Clock) Reset() {
	c.mock = nil
}

func (c *Clock) Now() time.Time {
	m := c.mock
	if m == nil {
		return globalClock.Now()
	}
	return m.Now()
}

func (c *Clock) Since(t time.Time) time.Duration {
	m := c.mock
	if m == nil {
		return globalClock.Since(t)
	}
	return m.Since(t)
}

func (c *Clock) After(d time.Duration) <-chan time.Time {
	m := c.mock
	if m == nil {
		return globalClock.After(d)
	}
	return m.After(d)
}
