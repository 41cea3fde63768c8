package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// Timestamp is a point in time that remembers whether it carries a time
// component. Vendor feeds mix bare dates and full datetimes in the same
// field; a datetime aligned to midnight UTC collapses to a bare date.
type Timestamp struct {
	t        time.Time
	dateOnly bool
}

// NewDate builds a date-only Timestamp, discarding any time component.
func NewDate(t time.Time) Timestamp {
	y, m, d := t.UTC().Date()
	return Timestamp{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), dateOnly: true}
}

// NewTime builds a Timestamp from a full datetime. A midnight-aligned
// UTC value collapses to a bare date.
func NewTime(t time.Time) Timestamp {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return NewDate(t)
	}
	return Timestamp{t: t}
}

// FromUnix builds a Timestamp from a Unix epoch in seconds.
func FromUnix(sec int64) Timestamp {
	return NewTime(time.Unix(sec, 0).UTC())
}

// ParseDate parses a bare YYYY-MM-DD date.
func ParseDate(s string) (Timestamp, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Timestamp{}, eris.Wrapf(err, "model: parse date %q", s)
	}
	return NewDate(t), nil
}

// Time returns the underlying UTC instant.
func (ts Timestamp) Time() time.Time { return ts.t }

// DateOnly reports whether the value is a bare date.
func (ts Timestamp) DateOnly() bool { return ts.dateOnly }

// IsZero reports whether the Timestamp is unset.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// String renders a bare date as YYYY-MM-DD and a datetime as RFC 3339.
func (ts Timestamp) String() string {
	if ts.dateOnly {
		return ts.t.Format("2006-01-02")
	}
	return ts.t.Format(time.RFC3339)
}

// MarshalJSON encodes a bare date as "YYYY-MM-DD" and a datetime as RFC 3339.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON accepts either a bare date or an RFC 3339 datetime.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return eris.Errorf("model: timestamp is not a JSON string: %s", s)
	}
	s = s[1 : len(s)-1]
	if t, err := time.Parse("2006-01-02", s); err == nil {
		*ts = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return eris.Wrapf(err, "model: parse timestamp %q", s)
	}
	*ts = NewTime(t)
	return nil
}
