package travel

import (
	"errors"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/dhima/time-machine/pkg/timemachine"
)

// Hatch reads the real clock whether or not a traveller is running.
type Hatch struct{}

// EscapeHatch lets code under test see through time travel.
var EscapeHatch Hatch

// IsTravelling reports whether any traveller is running.
func (Hatch) IsTravelling() bool {
	return IsTravelling()
}

func (Hatch) Now(opts ...clock.NowOption) time.Time {
	if t, err := timemachine.OriginalNow(opts...); !notIntercepting(err) {
		return t
	}
	return clock.Now(opts...)
}

func (Hatch) UTCNow() time.Time {
	if t, err := timemachine.OriginalUTCNow(); !notIntercepting(err) {
		return t
	}
	return clock.UTCNow()
}

func (Hatch) ClockGettime(id clock.ClockID) (float64, error) {
	if secs, err := timemachine.OriginalClockGettime(id); !notIntercepting(err) {
		return secs, err
	}
	return clock.ClockGettime(id)
}

func (Hatch) ClockGettimeNS(id clock.ClockID) (int64, error) {
	if ns, err := timemachine.OriginalClockGettimeNS(id); !notIntercepting(err) {
		return ns, err
	}
	return clock.ClockGettimeNS(id)
}

func (Hatch) Gmtime(secs ...float64) (clock.StructTime, error) {
	if st, err := timemachine.OriginalGmtime(secs...); !notIntercepting(err) {
		return st, err
	}
	return clock.Gmtime(secs...)
}

func (Hatch) Localtime(secs ...float64) (clock.StructTime, error) {
	if st, err := timemachine.OriginalLocaltime(secs...); !notIntercepting(err) {
		return st, err
	}
	return clock.Localtime(secs...)
}

func (Hatch) Monotonic() float64 {
	if secs, err := timemachine.OriginalMonotonic(); !notIntercepting(err) {
		return secs
	}
	return clock.Monotonic()
}

func (Hatch) MonotonicNS() int64 {
	if ns, err := timemachine.OriginalMonotonicNS(); !notIntercepting(err) {
		return ns
	}
	return clock.MonotonicNS()
}

func (Hatch) Strftime(format string, t ...clock.StructTime) (string, error) {
	if s, err := timemachine.OriginalStrftime(format, t...); !notIntercepting(err) {
		return s, err
	}
	return clock.Strftime(format, t...)
}

func (Hatch) Time() float64 {
	if secs, err := timemachine.OriginalTime(); !notIntercepting(err) {
		return secs
	}
	return clock.Time()
}

func (Hatch) TimeNS() int64 {
	return realTimeNS()
}

func notIntercepting(err error) bool {
	return errors.Is(err, timemachine.ErrNotIntercepting)
}
