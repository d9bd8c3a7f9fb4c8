//go:build linux || darwin

package clock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Clock ids understood by ClockGettime.
const (
	ClockRealtime  ClockID = unix.CLOCK_REALTIME
	ClockMonotonic ClockID = unix.CLOCK_MONOTONIC
)

var (
	clockGettimeEntry   = newEntry[ClockGettimeFunc](EntryClockGettime, nativeClockGettime)
	clockGettimeNSEntry = newEntry[ClockGettimeNSFunc](EntryClockGettimeNS, nativeClockGettimeNS)
)

func nativeClockGettime(id ClockID) (float64, error) {
	ns, err := nativeClockGettimeNS(id)
	if err != nil {
		return 0, err
	}
	return float64(ns) / float64(time.Second), nil
}

func nativeClockGettimeNS(id ClockID) (int64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(int32(id), &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime(%d): %w", id, err)
	}
	return ts.Nano(), nil
}
