package alarm

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LabelLayout is the display format of alarm labels.
	LabelLayout = "15:04:05"

	maxHour   = 23
	maxMinute = 59
	maxSecond = 59
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Validate checks every component range.
func (t TimeOfDay) Validate() error {
	if err := checkRange("hour", t.Hour, maxHour); err != nil {
		return err
	}

	if err := checkRange("minute", t.Minute, maxMinute); err != nil {
		return err
	}

	return checkRange("second", t.Second, maxSecond)
}

// String renders the time of day as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Next returns the first moment at or after now whose wall-clock time
// equals t. A time that already passed today, including the current
// second once part of it has elapsed, moves to tomorrow.
func (t TimeOfDay) Next(now time.Time) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, t.Second, 0, now.Location())

	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate
}

// ParseTimeOfDay converts three user-supplied strings into a validated TimeOfDay.
// Surrounding whitespace is ignored; "07" and "7" are both accepted.
func ParseTimeOfDay(hour, minute, second string) (TimeOfDay, error) {
	var (
		result TimeOfDay
		err    error
	)

	if result.Hour, err = parseComponent("hour", hour); err != nil {
		return TimeOfDay{}, err
	}

	if result.Minute, err = parseComponent("minute", minute); err != nil {
		return TimeOfDay{}, err
	}

	if result.Second, err = parseComponent("second", second); err != nil {
		return TimeOfDay{}, err
	}

	if err = result.Validate(); err != nil {
		return TimeOfDay{}, err
	}

	return result, nil
}

// ParseClock parses "HH:MM:SS" (or "HH:MM", with seconds defaulting to zero).
func ParseClock(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	switch len(parts) {
	case 2:
		return ParseTimeOfDay(parts[0], parts[1], "0")
	case 3:
		return ParseTimeOfDay(parts[0], parts[1], parts[2])
	default:
		return TimeOfDay{}, newValidationError("time", s, "expected HH:MM:SS")
	}
}

// parseComponent parses one decimal component.
func parseComponent(field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, newValidationError(field, raw, "not a number")
	}

	return value, nil
}

// checkRange verifies 0 <= value <= upper.
func checkRange(field string, value, upper int) error {
	if value < 0 || value > upper {
		return newValidationError(field, strconv.Itoa(value), fmt.Sprintf("must be between 0 and %d", upper))
	}

	return nil
}
