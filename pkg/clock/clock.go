package clock

import "time"

// Clock provides an abstraction over time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock returns the current time as reported by the Now entry point,
// so it follows time travel while interception is active.
type RealClock struct{}

func (RealClock) Now() time.Time { return Now() }

// FixedClock reports the same instant on every call. Passed to travel.New
// it is read once, like any Clock destination, and keeps its location, so
// a FixedClock in a named zone also switches time.Local for the trip.
type FixedClock struct{ at time.Time }

// NewFixed returns a FixedClock pinned to at.
func NewFixed(at time.Time) FixedClock { return FixedClock{at: at} }

func (f FixedClock) Now() time.Time { return f.at }
