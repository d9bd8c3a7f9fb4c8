package timemachine

import (
	"fmt"
	"testing"
	"time"

	"github.com/dhima/time-machine/pkg/clock"
)

var nativeAt = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

// fakeRuntime is a dispatch table that never touches the real clock.
type fakeRuntime struct {
	entries map[string]any

	now            *clock.Entry[clock.NowFunc]
	utcNow         *clock.Entry[clock.UTCNowFunc]
	clockGettime   *clock.Entry[clock.ClockGettimeFunc]
	clockGettimeNS *clock.Entry[clock.ClockGettimeNSFunc]
	gmtime         *clock.Entry[clock.GmtimeFunc]
	localtime      *clock.Entry[clock.LocaltimeFunc]
	monotonic      *clock.Entry[clock.MonotonicFunc]
	monotonicNS    *clock.Entry[clock.MonotonicNSFunc]
	strftime       *clock.Entry[clock.StrftimeFunc]
	time           *clock.Entry[clock.TimeFunc]
	timeNS         *clock.Entry[clock.TimeNSFunc]
}

func newFakeRuntime() *fakeRuntime {
	rt := &fakeRuntime{
		now: clock.NewEntry[clock.NowFunc](clock.EntryNow, func(cal *clock.Calendar, opts ...clock.NowOption) time.Time {
			return nativeAt.In(cal.Locate(opts...))
		}),
		utcNow: clock.NewEntry[clock.UTCNowFunc](clock.EntryUTCNow, func(*clock.Calendar) time.Time {
			return nativeAt
		}),
		clockGettime: clock.NewEntry[clock.ClockGettimeFunc](clock.EntryClockGettime, func(id clock.ClockID) (float64, error) {
			return 100 + float64(id), nil
		}),
		clockGettimeNS: clock.NewEntry[clock.ClockGettimeNSFunc](clock.EntryClockGettimeNS, func(id clock.ClockID) (int64, error) {
			return 100_000_000_000 + int64(id), nil
		}),
		gmtime: clock.NewEntry[clock.GmtimeFunc](clock.EntryGmtime, func(secs ...float64) (clock.StructTime, error) {
			return clock.StructTime{Year: 2001, Zone: "native-gm", Second: len(secs)}, nil
		}),
		localtime: clock.NewEntry[clock.LocaltimeFunc](clock.EntryLocaltime, func(secs ...float64) (clock.StructTime, error) {
			return clock.StructTime{Year: 2001, Zone: "native-local", Second: len(secs)}, nil
		}),
		monotonic: clock.NewEntry[clock.MonotonicFunc](clock.EntryMonotonic, func() float64 {
			return 1.5
		}),
		monotonicNS: clock.NewEntry[clock.MonotonicNSFunc](clock.EntryMonotonicNS, func() int64 {
			return 1_500_000_000
		}),
		strftime: clock.NewEntry[clock.StrftimeFunc](clock.EntryStrftime, func(format string, t ...clock.StructTime) (string, error) {
			return fmt.Sprintf("native:%s:%d", format, len(t)), nil
		}),
		time: clock.NewEntry[clock.TimeFunc](clock.EntryTime, func() float64 {
			return float64(nativeAt.Unix())
		}),
		timeNS: clock.NewEntry[clock.TimeNSFunc](clock.EntryTimeNS, func() int64 {
			return nativeAt.UnixNano()
		}),
	}
	rt.entries = map[string]any{
		clock.EntryNow:            rt.now,
		clock.EntryUTCNow:         rt.utcNow,
		clock.EntryClockGettime:   rt.clockGettime,
		clock.EntryClockGettimeNS: rt.clockGettimeNS,
		clock.EntryGmtime:         rt.gmtime,
		clock.EntryLocaltime:      rt.localtime,
		clock.EntryMonotonic:      rt.monotonic,
		clock.EntryMonotonicNS:    rt.monotonicNS,
		clock.EntryStrftime:       rt.strftime,
		clock.EntryTime:           rt.time,
		clock.EntryTimeNS:         rt.timeNS,
	}
	return rt
}

// without drops entries, the way a platform without them would.
func (rt *fakeRuntime) without(names ...string) *fakeRuntime {
	for _, name := range names {
		delete(rt.entries, name)
	}
	return rt
}

func (rt *fakeRuntime) Resolve(name string) (any, error) {
	e, ok := rt.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", clock.ErrNoEntry, name)
	}
	return e, nil
}

var policyAt = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// frozenPolicy reports a fixed instant and echoes its arguments back.
type frozenPolicy struct {
	at time.Time
}

func (p frozenPolicy) Now(opts ...clock.NowOption) time.Time {
	return p.at.In(clock.CurrentCalendar().Locate(opts...))
}

func (p frozenPolicy) UTCNow() time.Time {
	return p.at.UTC()
}

func (p frozenPolicy) ClockGettime(id clock.ClockID) (float64, error) {
	return float64(p.at.Unix()) + float64(id), nil
}

func (p frozenPolicy) ClockGettimeNS(id clock.ClockID) (int64, error) {
	return p.at.UnixNano() + int64(id), nil
}

func (p frozenPolicy) Gmtime(secs ...float64) (clock.StructTime, error) {
	st := clock.StructTimeOf(p.at.UTC())
	st.Second = len(secs)
	return st, nil
}

func (p frozenPolicy) Localtime(secs ...float64) (clock.StructTime, error) {
	st := clock.StructTimeOf(p.at.UTC())
	st.Zone = "policy-local"
	st.Second = len(secs)
	return st, nil
}

func (p frozenPolicy) Monotonic() float64 {
	return 7
}

func (p frozenPolicy) MonotonicNS() int64 {
	return 7_000_000_000
}

func (p frozenPolicy) Strftime(format string, t ...clock.StructTime) (string, error) {
	return fmt.Sprintf("policy:%s:%d", format, len(t)), nil
}

func (p frozenPolicy) Time() float64 {
	return float64(p.at.Unix())
}

func (p frozenPolicy) TimeNS() int64 {
	return p.at.UnixNano()
}

// withPolicy sets p for the duration of the test.
func withPolicy(t *testing.T, p Policy) {
	t.Helper()
	previous := SetPolicy(p)
	t.Cleanup(func() { SetPolicy(previous) })
}

// patched returns an interceptor over rt that is unpatched when the test ends.
func patched(t *testing.T, rt *fakeRuntime) *Interceptor {
	t.Helper()
	i := newInterceptor(rt)
	if err := i.Patch(); err != nil {
		t.Fatalf("patch: %v", err)
	}
	t.Cleanup(func() { _ = i.Unpatch() })
	return i
}
