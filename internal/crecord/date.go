package crecord

import (
	"encoding/json"
	"strings"
	"time"
)

// Date is a calendar date with JSON support for the formats court records
// use. The zero Date means "unknown"; record data is frequently incomplete
// and rules must tolerate that.
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate reads a date in ISO or US format. Empty or unreadable strings
// parse to the zero Date; a docket with a mangled date field is still worth
// analyzing.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}
		}
	}
	return Date{}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(*s)
	return nil
}

// Before reports whether d is strictly before other. Zero dates sort first.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// YearsBetween returns the number of whole years from earlier to later,
// negative when later precedes earlier.
func YearsBetween(earlier, later Date) int {
	if earlier.IsZero() || later.IsZero() {
		return 0
	}
	sign := 1
	a, b := earlier, later
	if b.Before(a) {
		a, b = b, a
		sign = -1
	}
	years := b.Year() - a.Year()
	anniversary := NewDate(a.Year()+years, a.Month(), a.Day())
	if anniversary.After(b) {
		years--
	}
	return sign * years
}

// YearsSince returns whole years from d up to asOf.
func (d Date) YearsSince(asOf time.Time) int {
	return YearsBetween(d, DateOf(asOf))
}
