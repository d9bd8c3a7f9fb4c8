// Package clock exposes the process's time-telling primitives: wall-clock
// and monotonic reads, POSIX clock reads, calendar conversions, formatting
// and the "current instant" factories.
//
// Every primitive dispatches through an Entry slot, so code that asks this
// package for the time can be redirected to a virtual clock without
// changing how it obtains the time. The timemachine package owns the
// redirection; this package only provides the slots and the native
// implementations they start out with.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ClockID selects the clock read by ClockGettime.
type ClockID int32

// Signatures of the entry points.
type (
	NowFunc            func(cal *Calendar, opts ...NowOption) time.Time
	UTCNowFunc         func(cal *Calendar) time.Time
	ClockGettimeFunc   func(id ClockID) (float64, error)
	ClockGettimeNSFunc func(id ClockID) (int64, error)
	GmtimeFunc         func(secs ...float64) (StructTime, error)
	LocaltimeFunc      func(secs ...float64) (StructTime, error)
	MonotonicFunc      func() float64
	MonotonicNSFunc    func() int64
	StrftimeFunc       func(format string, t ...StructTime) (string, error)
	TimeFunc           func() float64
	TimeNSFunc         func() int64
)

var (
	// ErrInvalidSeconds is returned for NaN or infinite timestamps.
	ErrInvalidSeconds = errors.New("clock: invalid timestamp")
	// ErrTooManyArguments is returned when an optional argument is given more than once.
	ErrTooManyArguments = errors.New("clock: too many arguments")
)

var (
	nowEntry         = newEntry[NowFunc](EntryNow, nativeNow)
	utcNowEntry      = newEntry[UTCNowFunc](EntryUTCNow, nativeUTCNow)
	gmtimeEntry      = newEntry[GmtimeFunc](EntryGmtime, nativeGmtime)
	localtimeEntry   = newEntry[LocaltimeFunc](EntryLocaltime, nativeLocaltime)
	monotonicEntry   = newEntry[MonotonicFunc](EntryMonotonic, nativeMonotonic)
	monotonicNSEntry = newEntry[MonotonicNSFunc](EntryMonotonicNS, nativeMonotonicNS)
	strftimeEntry    = newEntry[StrftimeFunc](EntryStrftime, nativeStrftime)
	timeEntry        = newEntry[TimeFunc](EntryTime, nativeTime)
	timeNSEntry      = newEntry[TimeNSFunc](EntryTimeNS, nativeTimeNS)
)

// Now returns the current instant in the location selected by opts, or in
// the bound calendar's location.
func Now(opts ...NowOption) time.Time {
	return nowEntry.Load()(CurrentCalendar(), opts...)
}

// UTCNow returns the current instant in UTC.
func UTCNow() time.Time {
	return utcNowEntry.Load()(CurrentCalendar())
}

// ClockGettime reads the clock id in seconds. It fails with ErrNoEntry on
// platforms without POSIX clocks.
func ClockGettime(id ClockID) (float64, error) {
	if clockGettimeEntry == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoEntry, EntryClockGettime)
	}
	return clockGettimeEntry.Load()(id)
}

// ClockGettimeNS reads the clock id in nanoseconds. It fails with
// ErrNoEntry on platforms without POSIX clocks.
func ClockGettimeNS(id ClockID) (int64, error) {
	if clockGettimeNSEntry == nil {
		return 0, fmt.Errorf("%w: %s", ErrNoEntry, EntryClockGettimeNS)
	}
	return clockGettimeNSEntry.Load()(id)
}

// Gmtime breaks secs, or the current time when omitted, down in UTC.
func Gmtime(secs ...float64) (StructTime, error) {
	return gmtimeEntry.Load()(secs...)
}

// Localtime breaks secs, or the current time when omitted, down in time.Local.
func Localtime(secs ...float64) (StructTime, error) {
	return localtimeEntry.Load()(secs...)
}

// Monotonic returns seconds elapsed on a clock that never goes backwards.
func Monotonic() float64 {
	return monotonicEntry.Load()()
}

// MonotonicNS is Monotonic in nanoseconds.
func MonotonicNS() int64 {
	return monotonicNSEntry.Load()()
}

// Strftime formats t, or the current local time when omitted.
func Strftime(format string, t ...StructTime) (string, error) {
	return strftimeEntry.Load()(format, t...)
}

// Time returns seconds since the Unix epoch.
func Time() float64 {
	return timeEntry.Load()()
}

// TimeNS returns nanoseconds since the Unix epoch.
func TimeNS() int64 {
	return timeNSEntry.Load()()
}

// monotonicBase anchors the monotonic clock at process start.
var monotonicBase = time.Now()

func nativeNow(cal *Calendar, opts ...NowOption) time.Time {
	return time.Now().In(cal.Locate(opts...))
}

func nativeUTCNow(*Calendar) time.Time {
	return time.Now().UTC()
}

func nativeGmtime(secs ...float64) (StructTime, error) {
	t, err := instant(secs)
	if err != nil {
		return StructTime{}, fmt.Errorf("gmtime: %w", err)
	}
	return StructTimeOf(t.UTC()), nil
}

func nativeLocaltime(secs ...float64) (StructTime, error) {
	t, err := instant(secs)
	if err != nil {
		return StructTime{}, fmt.Errorf("localtime: %w", err)
	}
	return StructTimeOf(t.In(time.Local)), nil
}

func nativeMonotonic() float64 {
	return float64(nativeMonotonicNS()) / float64(time.Second)
}

func nativeMonotonicNS() int64 {
	return int64(time.Since(monotonicBase))
}

func nativeStrftime(format string, t ...StructTime) (string, error) {
	var st StructTime
	switch len(t) {
	case 0:
		st = StructTimeOf(time.Now().In(time.Local))
	case 1:
		st = t[0]
	default:
		return "", fmt.Errorf("strftime: %w: got %d time values", ErrTooManyArguments, len(t))
	}
	out, err := strftime.Format(format, st.Time())
	if err != nil {
		return "", fmt.Errorf("strftime: %w", err)
	}
	return out, nil
}

func nativeTime() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func nativeTimeNS() int64 {
	return time.Now().UnixNano()
}

// instant converts an optional seconds argument into a time.Time, reading
// the real clock when it is omitted.
func instant(secs []float64) (time.Time, error) {
	switch len(secs) {
	case 0:
		return time.Now(), nil
	case 1:
		return FromSeconds(secs[0])
	default:
		return time.Time{}, fmt.Errorf("%w: got %d timestamps", ErrTooManyArguments, len(secs))
	}
}

// FromSeconds converts fractional seconds since the Unix epoch to a time.Time.
func FromSeconds(secs float64) (time.Time, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSeconds, secs)
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))), nil
}
