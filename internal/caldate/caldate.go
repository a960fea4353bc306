package caldate

import (
	"fmt"
	"time"
)

// Day is a local calendar date counted as whole days since the Unix epoch.
// Day arithmetic is plain integer subtraction, so "yesterday" is always
// exactly 1 regardless of DST or time-of-day.
type Day int

const dayLayout = "2006-01-02"

// legacyLayout matches dates written by the pre-migration storage format
// (JavaScript Date.toDateString(), e.g. "Mon Jan 02 2006").
const legacyLayout = "Mon Jan 02 2006"

// Today returns the current device-local calendar date.
func Today() Day {
	return FromTime(time.Now())
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Time returns midnight of d in UTC.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// Sub returns the number of calendar days from other to d.
func (d Day) Sub(other Day) int {
	return int(d - other)
}

func (d Day) String() string {
	return d.Time().Format(dayLayout)
}

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (Day, bool) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return 0, false
	}
	return FromTime(t), true
}

// ParseLegacy parses either YYYY-MM-DD or the legacy toDateString layout.
func ParseLegacy(s string) (Day, bool) {
	if d, ok := Parse(s); ok {
		return d, true
	}
	t, err := time.Parse(legacyLayout, s)
	if err != nil {
		return 0, false
	}
	return FromTime(t), true
}

// MarshalJSON encodes the day as a "YYYY-MM-DD" string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON accepts both the current and the legacy layout. An empty
// or unparseable value resolves to today: stored dates only ever gate
// "is this data from today" checks, and today is the fallback the
// pre-migration code used for missing dates.
func (d *Day) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		*d = Today()
		return nil
	}
	if parsed, ok := ParseLegacy(string(data[1 : len(data)-1])); ok {
		*d = parsed
		return nil
	}
	*d = Today()
	return nil
}
