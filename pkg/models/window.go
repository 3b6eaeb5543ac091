package models

import (
	"fmt"
	"time"
)

// dateLayout is the accepted format for window bounds.
const dateLayout = "2006-01-02"

// Window is the half-open commit time window [Since, Until). Both bounds of
// the configured date range are inclusive; Until carries the extra day that
// makes the end date effectively inclusive.
type Window struct {
	Since time.Time
	Until time.Time

	start string
	end   string
}

// ParseWindow builds a window from inclusive YYYY-MM-DD start and end dates.
func ParseWindow(start, end string) (Window, error) {
	since, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	until, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if until.Before(since) {
		return Window{}, fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	return Window{
		Since: since,
		Until: until.AddDate(0, 0, 1),
		start: start,
		end:   end,
	}, nil
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && t.Before(w.Until)
}

// Label returns the human-readable period description used in reports.
func (w Window) Label() string {
	return fmt.Sprintf("%s to %s", w.start, w.end)
}
