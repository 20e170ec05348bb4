// Package testutil provides deterministic clock and id sources for tests.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock is a settable test clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at the given time.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current test time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Set moves the clock to an absolute time.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// SequentialIDs returns a uuid generator producing a predictable sequence.
func SequentialIDs() func() uuid.UUID {
	var n int

	return func() uuid.UUID {
		n++
		return uuid.MustParse(
			fmt.Sprintf("00000000-0000-0000-0000-%012d", n),
		)
	}
}
