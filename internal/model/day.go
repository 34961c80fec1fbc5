package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Day is a calendar day in "YYYY-MM-DD" form.
//
// Days compare correctly with plain string comparison because the format is
// fixed-width and zero-padded. All date-relative decisions in the engine
// (missed vs planned-only, day bucketing, conflict detection) operate on Day
// values, never on time.Time, so results cannot drift with the host timezone.
type Day string

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDay validates and returns a Day from its string form.
// Returns an error for anything that is not a zero-padded "YYYY-MM-DD".
func ParseDay(s string) (Day, error) {
	if !dayPattern.MatchString(s) {
		return "", fmt.Errorf("invalid day %q: expected YYYY-MM-DD", s)
	}
	return Day(s), nil
}

// Before reports whether d is strictly earlier than other.
// Lexicographic comparison is correct for the fixed format.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return string(d) > string(other)
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d == ""
}

// String returns the "YYYY-MM-DD" form.
func (d Day) String() string {
	return string(d)
}

// ClockMinutes parses a "HH:MM" clock time into minutes since midnight.
// Returns an error for malformed or out-of-range input.
func ClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", clock)
	}
	return h*60 + m, nil
}

// ComposeLocal joins a day and an optional "HH:MM" clock time into a local
// timestamp string. An empty clock time composes to midnight; callers that
// care about all-day semantics must check the session's own Time field, not
// the composed value.
func ComposeLocal(day Day, clock string) string {
	if clock == "" {
		return day.String() + "T00:00"
	}
	return day.String() + "T" + clock
}
