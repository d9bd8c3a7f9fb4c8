package clock

import (
	"sync/atomic"
	"time"
)

// Calendar is the receiver of the Now and UTCNow factories. The bound
// calendar is read again on every call, so rebinding it with BindCalendar
// takes effect immediately.
type Calendar struct {
	Name string
	// Location used by Now when no In option is given. Nil means time.Local
	// at call time.
	Location *time.Location
}

// Gregorian is the calendar bound at startup.
var Gregorian = &Calendar{Name: "gregorian"}

var calendar atomic.Pointer[Calendar]

func init() {
	calendar.Store(Gregorian)
}

// BindCalendar binds c as the current calendar and returns the previous one.
// A nil c rebinds Gregorian.
func BindCalendar(c *Calendar) *Calendar {
	if c == nil {
		c = Gregorian
	}
	return calendar.Swap(c)
}

// CurrentCalendar returns the bound calendar.
func CurrentCalendar() *Calendar {
	return calendar.Load()
}

// NowOption configures a call to Now.
type NowOption func(*NowParams)

// NowParams holds the options a Now call was made with.
type NowParams struct {
	Location *time.Location
}

// In makes Now report the time in loc.
func In(loc *time.Location) NowOption {
	return func(p *NowParams) {
		p.Location = loc
	}
}

// Params applies opts.
func Params(opts ...NowOption) NowParams {
	var p NowParams
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Locate resolves the location a Now call with opts reports in: the In
// option, then the calendar's own location, then time.Local.
func (c *Calendar) Locate(opts ...NowOption) *time.Location {
	if p := Params(opts...); p.Location != nil {
		return p.Location
	}
	if c != nil && c.Location != nil {
		return c.Location
	}
	return time.Local
}
