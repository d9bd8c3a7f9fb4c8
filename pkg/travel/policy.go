package travel

import (
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/dhima/time-machine/pkg/timemachine"
)

// virtualClock answers intercepted calls from the current traveller.
// Conversions and formatting are delegated to the captured originals with
// the virtual instant filled in.
type virtualClock struct{}

var _ timemachine.Policy = virtualClock{}

func (virtualClock) TimeNS() int64 {
	if t := Current(); t != nil {
		return t.TimeNS()
	}
	return realTimeNS()
}

func (v virtualClock) Time() float64 {
	return float64(v.TimeNS()) / float64(time.Second)
}

func (v virtualClock) Now(opts ...clock.NowOption) time.Time {
	return time.Unix(0, v.TimeNS()).In(clock.CurrentCalendar().Locate(opts...))
}

func (v virtualClock) UTCNow() time.Time {
	return time.Unix(0, v.TimeNS()).UTC()
}

func (v virtualClock) ClockGettime(id clock.ClockID) (float64, error) {
	if id != clock.ClockRealtime {
		return timemachine.OriginalClockGettime(id)
	}
	return v.Time(), nil
}

func (v virtualClock) ClockGettimeNS(id clock.ClockID) (int64, error) {
	if id != clock.ClockRealtime {
		return timemachine.OriginalClockGettimeNS(id)
	}
	return v.TimeNS(), nil
}

func (v virtualClock) Gmtime(secs ...float64) (clock.StructTime, error) {
	if len(secs) > 0 {
		return timemachine.OriginalGmtime(secs...)
	}
	return timemachine.OriginalGmtime(v.Time())
}

func (v virtualClock) Localtime(secs ...float64) (clock.StructTime, error) {
	if len(secs) > 0 {
		return timemachine.OriginalLocaltime(secs...)
	}
	return timemachine.OriginalLocaltime(v.Time())
}

func (v virtualClock) Strftime(format string, t ...clock.StructTime) (string, error) {
	if len(t) > 0 {
		return timemachine.OriginalStrftime(format, t...)
	}
	local, err := v.Localtime()
	if err != nil {
		return "", err
	}
	return timemachine.OriginalStrftime(format, local)
}

// The monotonic clock follows the virtual wall clock while travelling.

func (v virtualClock) Monotonic() float64 {
	return v.Time()
}

func (v virtualClock) MonotonicNS() int64 {
	return v.TimeNS()
}
