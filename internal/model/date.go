package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for every task date
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD date
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate parses an ISO date as UTC midnight.
// Day arithmetic happens in UTC so DST transitions never skew a day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate formats a time as an ISO date using its own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether s is exactly a well-formed ISO date.
// Surrounding whitespace is not allowed since dates are compared as strings.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the local calendar day of now
func Today(now time.Time) string {
	return FormatDate(now.In(time.Local))
}

// Yesterday returns the local calendar day before now
func Yesterday(now time.Time) string {
	local := now.In(time.Local)
	return FormatDate(time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, time.Local))
}

// AddDays shifts an ISO date by n days (n may be negative)
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of calendar days from a to b
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// ResolveDate accepts "today", "tomorrow", "yesterday", "+N"/"-N" day offsets
// or an ISO date, relative to now
func ResolveDate(input string, now time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := Today(now)
	switch s {
	case "", "today":
		return today, nil
	case "tomorrow":
		return AddDays(today, 1)
	case "yesterday":
		return AddDays(today, -1)
	}

	if s[0] == '+' || s[0] == '-' {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			return AddDays(today, n)
		}
	}

	if _, err := ParseDate(s); err != nil {
		return "", err
	}
	return s, nil
}
