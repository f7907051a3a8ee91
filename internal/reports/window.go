package reports

import "time"

// Window is a half-open time range [Start, End) applied to the
// fulfillment timestamp of line items.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// RollingMonth is the window covering the month leading up to now.
func RollingMonth(now time.Time) Window {
	return Window{Start: now.AddDate(0, -1, 0), End: now}
}

// PreviousRollingMonth is the window covering the month before RollingMonth.
func PreviousRollingMonth(now time.Time) Window {
	return Window{Start: now.AddDate(0, -2, 0), End: now.AddDate(0, -1, 0)}
}

// CalendarYear covers the full calendar year in UTC.
func CalendarYear(year int) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}
