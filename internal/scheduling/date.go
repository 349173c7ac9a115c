// Package scheduling contains the pure scheduling core: calendar-date
// normalization, technician availability resolution, and multi-day
// schedule-block segmentation. Nothing in this package performs I/O.
package scheduling

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date layout used across the core.
const DateLayout = "2006-01-02"

// CalendarDate is a zone-less calendar date in canonical YYYY-MM-DD form.
// Because the form is zero-padded ISO, lexicographic comparison of two
// CalendarDate values is equivalent to chronological comparison.
type CalendarDate string

// ParseCalendarDate normalizes an external date representation to a
// CalendarDate. Accepted inputs: a canonical YYYY-MM-DD string, or an
// RFC3339 date-time whose date portion is taken. Anything else is an error;
// callers that receive unvetted upstream data are expected to skip bad
// values rather than abort.
func ParseCalendarDate(s string) (CalendarDate, error) {
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t), nil
	}
	return "", fmt.Errorf("unrecognized date format: %q", s)
}

// FromTime converts a time.Time to the CalendarDate of its date portion.
func FromTime(t time.Time) CalendarDate {
	return CalendarDate(t.Format(DateLayout))
}

// FromUnix converts a Unix-seconds timestamp to a CalendarDate in UTC.
func FromUnix(sec int64) CalendarDate {
	return FromTime(time.Unix(sec, 0).UTC())
}

// Time returns the date at midnight UTC. Invalid dates return the zero time.
func (d CalendarDate) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether d is a well-formed canonical date.
func (d CalendarDate) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// Weekday returns the day of week for d.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
func (d CalendarDate) Before(other CalendarDate) bool { return d < other }

// After reports whether d falls strictly after other.
func (d CalendarDate) After(other CalendarDate) bool { return d > other }

func (d CalendarDate) String() string { return string(d) }

// At combines the date with a minutes-from-midnight offset into an absolute
// instant in the given location.
func (d CalendarDate) At(minutes int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := d.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(minutes) * time.Minute)
}

// MinutesToClock formats a minutes-from-midnight offset as HH:MM.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockToMinutes parses an HH:MM clock string into minutes from midnight.
// Trailing text and out-of-range components are rejected.
func ClockToMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
