// Package calendar builds the month grid the booking wizard shows for date
// selection. The grid is always six full ISO weeks (42 cells) anchored on
// the Monday on or before the first of the view month, so the layout is
// stable no matter which weekday the month starts on.
package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Month identifies a view month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the previous calendar month.
func (m Month) Prev() Month {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	p := first.AddDate(0, -1, 0)
	return Month{Year: p.Year(), Month: p.Month()}
}

// Next returns the next calendar month.
func (m Month) Next() Month {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, 0)
	return Month{Year: n.Year(), Month: n.Month()}
}

// Label renders the header text, e.g. "September 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Cell is one day in the grid. All flags are derived at build time; a grid
// is regenerated wholesale, never mutated.
type Cell struct {
	Date         string `json:"date"`
	Day          int    `json:"day"`
	CurrentMonth bool   `json:"isCurrentMonth"`
	Today        bool   `json:"isToday"`
	Selected     bool   `json:"isSelected"`
	Past         bool   `json:"isPast"`
}

// Selectable reports whether tapping the cell records a selection. Past and
// out-of-month cells are no-ops.
func (c Cell) Selectable() bool {
	return c.CurrentMonth && !c.Past
}

// Build produces the 42-cell grid for view. today anchors the isToday flag
// and the default past boundary; selected and min are "YYYY-MM-DD" strings,
// empty when unset. Day comparisons are by calendar-date string, so a
// selection survives month navigation and time of day never matters.
func Build(view Month, today time.Time, selected, min string) []Cell {
	first := time.Date(view.Year, view.Month, 1, 0, 0, 0, 0, time.UTC)
	// Monday=0 offset back to the start of the ISO week.
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	todayStr := today.Format(dateLayout)
	boundary := min
	if boundary == "" {
		boundary = todayStr
	}

	cells := make([]Cell, 0, 42)
	for i := 0; i < 42; i++ {
		d := start.AddDate(0, 0, i)
		ds := d.Format(dateLayout)
		cells = append(cells, Cell{
			Date:         ds,
			Day:          d.Day(),
			CurrentMonth: d.Month() == view.Month,
			Today:        ds == todayStr,
			Selected:     selected != "" && ds == selected,
			Past:         ds < boundary,
		})
	}
	return cells
}

// CanNavigateBack reports whether the previous-month button stays enabled:
// navigation is refused once the first day of the resulting month would fall
// before the first day of min's month. The partial month containing min
// itself remains reachable.
func CanNavigateBack(view Month, min string) bool {
	if min == "" {
		return true
	}
	m, err := time.Parse(dateLayout, min)
	if err != nil {
		return true
	}
	prev := view.Prev()
	prevFirst := time.Date(prev.Year, prev.Month, 1, 0, 0, 0, 0, time.UTC)
	minFirst := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
	return !prevFirst.Before(minFirst)
}
