//go:build !linux && !darwin

package clock

// Clock ids understood by ClockGettime. No clock can be read through them
// on this platform.
const (
	ClockRealtime  ClockID = 0
	ClockMonotonic ClockID = 1
)

var (
	clockGettimeEntry   *Entry[ClockGettimeFunc]
	clockGettimeNSEntry *Entry[ClockGettimeNSFunc]
)
