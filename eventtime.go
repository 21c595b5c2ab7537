package cloudevents

import "time"

// Accepted input layouts: ISO-8601 with "T" or space separator, optional
// fractional seconds, with or without a UTC offset. Layouts with an offset
// are tried first so an offset-less match really means no offset was given.
var eventTimeLayouts = []struct {
	layout string
	naive  bool
}{
	{"2006-01-02T15:04:05.999999999Z07:00", false},
	{"2006-01-02 15:04:05.999999999Z07:00", false},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02 15:04:05.999999999", true},
}

const iso8601Layout = "2006-01-02T15:04:05.999999-07:00"

// EventTime is an event timestamp. The zero value is unset. An EventTime
// records whether its source value carried an explicit UTC offset; a value
// without one keeps its wall clock reading and counts as UTC in both the
// ISO8601 and the UnixMilli accessor.
type EventTime struct {
	t     time.Time
	naive bool
	set   bool
}

// ParseEventTime parses an ISO-8601-like timestamp string.
func ParseEventTime(s string) (EventTime, error) {
	var lastErr error
	for _, l := range eventTimeLayouts {
		t, err := time.Parse(l.layout, s)
		if err == nil {
			return EventTime{t: t, naive: l.naive, set: true}, nil
		}
		lastErr = err
	}
	return EventTime{}, lastErr
}

// NewEventTime returns an EventTime carrying t.
func NewEventTime(t time.Time) EventTime {
	return EventTime{t: t, set: true}
}

func nowUTC() EventTime {
	return EventTime{t: time.Now().UTC(), set: true}
}

// IsSet reports whether the time carries a value.
func (et EventTime) IsSet() bool {
	return et.set
}

// Naive reports whether the source value lacked an explicit UTC offset.
func (et EventTime) Naive() bool {
	return et.naive
}

// Time returns the underlying time value and whether it is set.
func (et EventTime) Time() (time.Time, bool) {
	return et.t, et.set
}

// ISO8601 formats the time with "T" separator, microsecond precision and
// an explicit numeric offset. Offset-less source values format as UTC
// (+00:00); explicit offsets are preserved as given. Returns ErrTimeUnset
// when the time is unset.
func (et EventTime) ISO8601() (string, error) {
	if !et.set {
		return "", ErrTimeUnset
	}
	return et.t.Format(iso8601Layout), nil
}

// UnixMilli returns the time as whole milliseconds since the Unix epoch,
// rounded to nearest. Offset-less source values count as UTC; explicit
// offsets are converted. Returns ErrTimeUnset when the time is unset.
func (et EventTime) UnixMilli() (int64, error) {
	if !et.set {
		return 0, ErrTimeUnset
	}
	return et.t.Round(time.Millisecond).UnixMilli(), nil
}
