package release

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutISO is the storage form of every release date.
	LayoutISO = "2006-01-02"
	// LayoutShort is the display form, e.g. "Nov 15, 2025".
	LayoutShort = "Jan 2, 2006"
)

// Date is a calendar day stored as an ISO "YYYY-MM-DD" string. It carries no
// time of day and no zone. A Date may be malformed when it comes from an
// untrusted source; Parse reports that.
type Date string

// NewDate builds a Date from a calendar triple.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(LayoutISO))
}

// ParseDate validates raw input and returns it as a Date.
func ParseDate(raw string) (Date, error) {
	d := Date(strings.TrimSpace(raw))
	if _, err := d.Time(); err != nil {
		return "", err
	}
	return d, nil
}

// Time parses the date as midnight UTC.
func (d Date) Time() (time.Time, error) {
	if d == "" {
		return time.Time{}, fmt.Errorf("release: empty date")
	}
	t, err := time.Parse(LayoutISO, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("release: invalid date %q: %w", string(d), err)
	}
	return t, nil
}

// Valid reports whether the date parses.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// Civil splits the date into year, month and day.
func (d Date) Civil() (int, time.Month, int, bool) {
	t, err := d.Time()
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), t.Month(), t.Day(), true
}

// SameDay reports whether the date falls on the given calendar day.
func (d Date) SameDay(year int, month time.Month, day int) bool {
	y, m, dd, ok := d.Civil()
	if !ok {
		return false
	}
	return y == year && m == month && dd == day
}

// Before reports whether d is strictly earlier than other. Malformed dates
// are never before anything.
func (d Date) Before(other Date) bool {
	a, err := d.Time()
	if err != nil {
		return false
	}
	b, err := other.Time()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// Short renders the date for display, e.g. "Nov 15, 2025". Malformed dates
// render verbatim.
func (d Date) Short() string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format(LayoutShort)
}

func (d Date) String() string {
	return string(d)
}
