package models

import (
	"fmt"
	"strings"
)

// DayOfWeek names the weekday a recurring schedule falls on. Schedules recur
// weekly and carry no calendar date.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

var weekdays = map[DayOfWeek]struct{}{
	Monday: {}, Tuesday: {}, Wednesday: {}, Thursday: {},
	Friday: {}, Saturday: {}, Sunday: {},
}

// Valid reports whether the value is one of the seven weekday names.
func (d DayOfWeek) Valid() bool {
	_, ok := weekdays[d]
	return ok
}

// ParseDayOfWeek normalises arbitrary casing ("monday", "MONDAY") into the
// canonical capitalised form.
func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("day of week is required")
	}
	day := DayOfWeek(strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:]))
	if !day.Valid() {
		return "", fmt.Errorf("invalid day of week: %q", raw)
	}
	return day, nil
}

// TimeInterval is a weekly recurring time range in venue-local wall-clock
// time, minute precision, no timezone.
type TimeInterval struct {
	DayOfWeek DayOfWeek `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// ParseClock converts an "HH:MM" string into minute-of-day.
func ParseClock(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%2d:%2d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", value)
	}
	return hours*60 + minutes, nil
}

// Validate checks the interval is well formed: known day, parseable clock
// values, start strictly before end.
func (t TimeInterval) Validate() error {
	if !t.DayOfWeek.Valid() {
		return fmt.Errorf("invalid day of week: %q", t.DayOfWeek)
	}
	start, err := ParseClock(t.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(t.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start time %s must be before end time %s", t.StartTime, t.EndTime)
	}
	return nil
}

// Overlaps reports whether the two intervals share any time on the same day.
// Intervals are half-open [start, end): ranges that merely touch at a
// boundary do not overlap. Malformed clock values never overlap.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	if t.DayOfWeek != other.DayOfWeek {
		return false
	}
	aStart, err := ParseClock(t.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := ParseClock(t.EndTime)
	if err != nil {
		return false
	}
	bStart, err := ParseClock(other.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := ParseClock(other.EndTime)
	if err != nil {
		return false
	}
	return aStart < bEnd && aEnd > bStart
}

// ExactMatch reports whether the intervals are on the same day with identical
// start and end times.
func (t TimeInterval) ExactMatch(other TimeInterval) bool {
	return t.DayOfWeek == other.DayOfWeek &&
		t.StartTime == other.StartTime &&
		t.EndTime == other.EndTime
}
