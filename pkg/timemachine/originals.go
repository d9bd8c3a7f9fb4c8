package timemachine

import (
	"time"

	"github.com/dhima/time-machine/pkg/clock"
)

// The Original* forwarders call the implementation captured by Patch,
// whatever the slot currently holds. They let a policy read the real clock
// from inside a redirected call without recursing into itself. Outside an
// interception window they fail with ErrNotIntercepting.

// OriginalNow calls the captured Now with the calendar bound at call time.
func (i *Interceptor) OriginalNow(opts ...clock.NowOption) (time.Time, error) {
	fn, err := i.now.captured()
	if err != nil {
		return time.Time{}, err
	}
	return fn(clock.CurrentCalendar(), opts...), nil
}

// OriginalUTCNow calls the captured UTCNow with the calendar bound at call time.
func (i *Interceptor) OriginalUTCNow() (time.Time, error) {
	fn, err := i.utcNow.captured()
	if err != nil {
		return time.Time{}, err
	}
	return fn(clock.CurrentCalendar()), nil
}

func (i *Interceptor) OriginalClockGettime(id clock.ClockID) (float64, error) {
	fn, err := i.clockGettime.captured()
	if err != nil {
		return 0, err
	}
	return fn(id)
}

func (i *Interceptor) OriginalClockGettimeNS(id clock.ClockID) (int64, error) {
	fn, err := i.clockGettimeNS.captured()
	if err != nil {
		return 0, err
	}
	return fn(id)
}

func (i *Interceptor) OriginalGmtime(secs ...float64) (clock.StructTime, error) {
	fn, err := i.gmtime.captured()
	if err != nil {
		return clock.StructTime{}, err
	}
	return fn(secs...)
}

func (i *Interceptor) OriginalLocaltime(secs ...float64) (clock.StructTime, error) {
	fn, err := i.localtime.captured()
	if err != nil {
		return clock.StructTime{}, err
	}
	return fn(secs...)
}

func (i *Interceptor) OriginalMonotonic() (float64, error) {
	fn, err := i.monotonic.captured()
	if err != nil {
		return 0, err
	}
	return fn(), nil
}

func (i *Interceptor) OriginalMonotonicNS() (int64, error) {
	fn, err := i.monotonicNS.captured()
	if err != nil {
		return 0, err
	}
	return fn(), nil
}

func (i *Interceptor) OriginalStrftime(format string, t ...clock.StructTime) (string, error) {
	fn, err := i.strftime.captured()
	if err != nil {
		return "", err
	}
	return fn(format, t...)
}

func (i *Interceptor) OriginalTime() (float64, error) {
	fn, err := i.time.captured()
	if err != nil {
		return 0, err
	}
	return fn(), nil
}

func (i *Interceptor) OriginalTimeNS() (int64, error) {
	fn, err := i.timeNS.captured()
	if err != nil {
		return 0, err
	}
	return fn(), nil
}

// Package-level forwarders for the process-wide interceptor.

func OriginalNow(opts ...clock.NowOption) (time.Time, error) {
	return std.OriginalNow(opts...)
}

func OriginalUTCNow() (time.Time, error) {
	return std.OriginalUTCNow()
}

func OriginalClockGettime(id clock.ClockID) (float64, error) {
	return std.OriginalClockGettime(id)
}

func OriginalClockGettimeNS(id clock.ClockID) (int64, error) {
	return std.OriginalClockGettimeNS(id)
}

func OriginalGmtime(secs ...float64) (clock.StructTime, error) {
	return std.OriginalGmtime(secs...)
}

func OriginalLocaltime(secs ...float64) (clock.StructTime, error) {
	return std.OriginalLocaltime(secs...)
}

func OriginalMonotonic() (float64, error) {
	return std.OriginalMonotonic()
}

func OriginalMonotonicNS() (int64, error) {
	return std.OriginalMonotonicNS()
}

func OriginalStrftime(format string, t ...clock.StructTime) (string, error) {
	return std.OriginalStrftime(format, t...)
}

func OriginalTime() (float64, error) {
	return std.OriginalTime()
}

func OriginalTimeNS() (int64, error) {
	return std.OriginalTimeNS()
}
