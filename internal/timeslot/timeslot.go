// Package timeslot generates the fixed universe of bookable time-of-day
// strings for a service window. It knows nothing about availability; the
// cross-filter narrows this universe afterwards.
package timeslot

import (
	"fmt"
	"time"
)

// DefaultStepMinutes is the slot granularity used when the business
// settings don't say otherwise.
const DefaultStepMinutes = 30

// AllTimes returns every "HH:MM" from startHour (inclusive) to endHour
// (exclusive) in stepMinutes increments, zero-padded.
func AllTimes(startHour, endHour, stepMinutes int) []string {
	w := Window{StartMinute: startHour * 60, EndMinute: endHour * 60, StepMinutes: stepMinutes}
	return w.Times()
}

// Window is a service window in minutes since midnight, half-open on the
// end.
type Window struct {
	StartMinute int
	EndMinute   int
	StepMinutes int
}

// ParseWindow builds a Window from "HH:MM" opening and closing times, as
// delivered by the reservation settings. A non-positive step falls back to
// DefaultStepMinutes.
func ParseWindow(start, end string, stepMinutes int) (Window, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start %q: %w", start, err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window end %q: %w", end, err)
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	return Window{
		StartMinute: s.Hour()*60 + s.Minute(),
		EndMinute:   e.Hour()*60 + e.Minute(),
		StepMinutes: stepMinutes,
	}, nil
}

// Times enumerates the window's "HH:MM" values in order.
func (w Window) Times() []string {
	if w.StepMinutes <= 0 || w.EndMinute <= w.StartMinute {
		return nil
	}
	out := make([]string, 0, (w.EndMinute-w.StartMinute)/w.StepMinutes+1)
	for m := w.StartMinute; m < w.EndMinute; m += w.StepMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// Contains reports whether "HH:MM" falls inside the window.
func (w Window) Contains(hhmm string) bool {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return m >= w.StartMinute && m < w.EndMinute
}
