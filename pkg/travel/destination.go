package travel

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dhima/time-machine/pkg/clock"
)

// Sequence yields a new destination each time a traveller is sent to it.
// The value returned by Next may be any destination that is not itself a
// Sequence or a function.
type Sequence interface {
	Next() any
}

// destination is a resolved instant plus the zone the traveller switches
// time.Local to, if any.
type destination struct {
	ns  int64
	loc *time.Location
}

// resolve turns one of the accepted destination values into an instant:
//
//   - time.Time, kept with its zone when the zone has a loadable name
//   - int, int64, float64: seconds since the Unix epoch
//   - time.Duration: offset from the current, possibly virtual, time
//   - string: RFC 3339 / ISO 8601 (date-only included), then free-form;
//     the zone or offset in a string only places the instant, it never
//     switches time.Local
//   - func() any, func() time.Time, Sequence: called once
//   - clock.Clock, such as clock.FixedClock: its Now is read once
func resolve(dest any) (destination, error) {
	base := dest
	switch d := dest.(type) {
	case Sequence:
		base = d.Next()
	case func() any:
		base = d()
	case func() time.Time:
		base = d()
	case clock.Clock:
		base = d.Now()
	}

	out, err := resolveBase(base)
	if err != nil {
		return destination{}, &DestinationError{Destination: dest, Err: err}
	}
	return out, nil
}

func resolveBase(v any) (destination, error) {
	switch d := v.(type) {
	case time.Time:
		return destination{ns: d.UnixNano(), loc: namedZone(d.Location())}, nil
	case int:
		return destination{ns: int64(d) * int64(time.Second)}, nil
	case int64:
		return destination{ns: d * int64(time.Second)}, nil
	case float64:
		t, err := clock.FromSeconds(d)
		if err != nil {
			return destination{}, err
		}
		return destination{ns: t.UnixNano()}, nil
	case time.Duration:
		return destination{ns: clock.TimeNS() + int64(d)}, nil
	case string:
		return parseDestination(d)
	default:
		return destination{}, ErrUnsupportedDestination
	}
}

// namedZone returns loc when a traveller should switch time.Local to it:
// UTC, or a zone that can be loaded by name. Local and fixed offsets are
// not switched to.
func namedZone(loc *time.Location) *time.Location {
	if loc == time.UTC {
		return time.UTC
	}
	if loc == nil || loc == time.Local {
		return nil
	}
	name := loc.String()
	if name == "" || name == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return nil
	}
	return loc
}

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// probeZone tells a naive free-form string apart from one carrying a zone:
// only the naive one moves when parsed in a different location.
var probeZone = time.FixedZone("probe", 13*60*60)

func parseDestination(s string) (destination, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return destination{ns: t.UnixNano()}, nil
		}
	}
	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, s); err != nil {
			continue
		}
		loc, err := naiveLocation(CurrentNaiveMode())
		if err != nil {
			return destination{}, err
		}
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return destination{}, err
		}
		return destination{ns: t.UnixNano()}, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return destination{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if probe, err := dateparse.ParseIn(s, probeZone); err == nil && probe.Equal(t) {
		return destination{ns: t.UnixNano()}, nil
	}
	loc, err := naiveLocation(CurrentNaiveMode())
	if err != nil {
		return destination{}, err
	}
	t, err = dateparse.ParseIn(s, loc)
	if err != nil {
		return destination{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return destination{ns: t.UnixNano()}, nil
}
