// Package calendar converts between caller-supplied date strings and the
// calendar days stored on exercises.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout renders a day as "Mon Jan 02 2006".
const DisplayLayout = "Mon Jan 02 2006"

// ErrInvalidDate is returned when a string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// layouts are tried in order; the first match wins.
var layouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DisplayLayout,
}

// Clock returns the current instant. Tests inject a fixed one.
type Clock func() time.Time

// Day truncates t to its calendar day, keeping the year/month/day as seen in
// t's own location, and returns it at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day according to clock.
func Today(clock Clock) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return Day(clock())
}

// Parse reads s as a calendar day. Surrounding whitespace is ignored.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseOptional is Parse for optional inputs: blank input yields nil.
func ParseOptional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Format renders a day in DisplayLayout.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}
