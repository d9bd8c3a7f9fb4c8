package clock

import "time"

// StructTime is a broken-down calendar time with second resolution, as
// produced by Gmtime and Localtime and consumed by Strftime.
type StructTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
	YearDay int
	IsDST   bool
	Zone    string
	// Offset is the zone offset in seconds east of UTC.
	Offset int
}

// StructTimeOf breaks t down in its own location.
func StructTimeOf(t time.Time) StructTime {
	zone, offset := t.Zone()
	return StructTime{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: t.Weekday(),
		YearDay: t.YearDay(),
		IsDST:   t.IsDST(),
		Zone:    zone,
		Offset:  offset,
	}
}

// Time reassembles s into an instant in a fixed zone named after s.Zone.
func (s StructTime) Time() time.Time {
	loc := time.UTC
	if s.Offset != 0 || (s.Zone != "" && s.Zone != "UTC") {
		loc = time.FixedZone(s.Zone, s.Offset)
	}
	return time.Date(s.Year, s.Month, s.Day, s.Hour, s.Minute, s.Second, 0, loc)
}

// Unix returns s as seconds since the Unix epoch.
func (s StructTime) Unix() int64 {
	return s.Time().Unix()
}
