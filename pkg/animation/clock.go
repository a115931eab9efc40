package animation

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock provides time for frame loops. The default implementation uses
// system time. Tests inject a clockwork fake via SetClock or
// Ticker.WithClock to drive frames deterministically.
type Clock = clockwork.Clock

// clock is the package-level time source, replaceable for testing.
var clock Clock = clockwork.NewRealClock()

// SetClock replaces the default clock. Returns the previous clock so callers
// can restore it during cleanup. Passing nil restores the system clock.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
	return prev
}

// DefaultClock returns the active package-level clock.
func DefaultClock() Clock { return clock }

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
