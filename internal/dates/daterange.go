// Package dates resolves the price-history window for a pipeline run from
// optional caller-supplied bounds.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted textual date format.
const Layout = "2006-01-02"

// Window is a resolved [Start, End] date range, both in Layout format.
// Invariant: Start <= End <= yesterday relative to the clock that resolved it.
type Window struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// FormatError reports a date string that is not a real calendar date in
// Layout format. Syntactically plausible but impossible dates (2023-02-30)
// are format errors too, never normalized.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a valid %s date", e.Field, e.Value, "YYYY-MM-DD")
}

// ErrStartAfterEnd is returned when the resolved start date lands after the
// resolved end date.
var ErrStartAfterEnd = errors.New("start date cannot be after end date")

// Resolve derives the data window from optional start/end strings.
//
// Empty end defaults to yesterday. An end after yesterday is clamped down
// silently, never rejected. Empty start defaults to 365 days before the
// already-clamped end. The ordering check runs once, after all defaulting.
// Resolve is pure: now is its only time source.
func Resolve(startDate, endDate string, now time.Time) (Window, error) {
	yesterday := truncateToDay(now.AddDate(0, 0, -1))

	end := yesterday
	if endDate != "" {
		parsed, err := time.Parse(Layout, endDate)
		if err != nil {
			return Window{}, &FormatError{Field: "end_date", Value: endDate}
		}
		end = parsed
	}
	if end.After(yesterday) {
		end = yesterday
	}

	start := end.AddDate(0, 0, -365)
	if startDate != "" {
		parsed, err := time.Parse(Layout, startDate)
		if err != nil {
			return Window{}, &FormatError{Field: "start_date", Value: startDate}
		}
		start = parsed
	}

	if start.After(end) {
		return Window{}, ErrStartAfterEnd
	}

	return Window{Start: start.Format(Layout), End: end.Format(Layout)}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
