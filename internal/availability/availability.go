// Package availability answers which time and zone selections remain legal
// given the latest slot list fetched for a (date, guests) pair, and
// reconciles a draft whose selections the new list no longer supports.
package availability

import (
	"strings"

	"github.com/intermediaal/e-table-reservation/internal/domain"
)

// Table wraps one fetched slot list. The zero value behaves as an empty
// list: nothing is bookable.
type Table struct {
	slots []domain.Slot
}

// NewTable builds a Table from an upstream slot list.
func NewTable(slots []domain.Slot) Table {
	return Table{slots: slots}
}

// Slots returns the underlying list.
func (t Table) Slots() []domain.Slot {
	return t.slots
}

// Empty reports whether no times are bookable at all.
func (t Table) Empty() bool {
	return len(t.slots) == 0
}

// slotAt finds the slot whose time matches hhmm. Slot times may carry
// trailing seconds, so "19:00" matches "19:00:00".
func (t Table) slotAt(hhmm string) (domain.Slot, bool) {
	for _, s := range t.slots {
		if timeMatches(s.Time, hhmm) {
			return s, true
		}
	}
	return domain.Slot{}, false
}

func timeMatches(slotTime, hhmm string) bool {
	if slotTime == hhmm {
		return true
	}
	return strings.HasPrefix(slotTime, hhmm+":")
}

// TimeAvailable reports whether any fetched slot exists at hhmm.
func (t Table) TimeAvailable(hhmm string) bool {
	_, ok := t.slotAt(hhmm)
	return ok
}

// ZoneAvailableAt answers "may the draft hold zoneID given the selected
// time". With no time selected every zone is provisionally available. A nil
// zoneID means "any zone", which holds as long as some slot exists at the
// selected time.
func (t Table) ZoneAvailableAt(selectedTime string, zoneID *int64) bool {
	if selectedTime == "" {
		return true
	}
	slot, ok := t.slotAt(selectedTime)
	if !ok {
		return false
	}
	if zoneID == nil {
		return true
	}
	return slot.HasZone(*zoneID)
}

// TimeAvailableForZone is the symmetric counterpart: with no zone selected
// it defers to TimeAvailable, otherwise the slot at hhmm must list the
// zone.
func (t Table) TimeAvailableForZone(hhmm string, zoneID *int64) bool {
	slot, ok := t.slotAt(hhmm)
	if !ok {
		return false
	}
	if zoneID == nil {
		return true
	}
	return slot.HasZone(*zoneID)
}

// ZoneEverAvailable reports whether zoneID appears in any slot of the list.
// Used to refuse selecting a zone the whole day has no table for.
func (t Table) ZoneEverAvailable(zoneID int64) bool {
	for _, s := range t.slots {
		if s.HasZone(zoneID) {
			return true
		}
	}
	return false
}

// Reconcile drops draft selections the table no longer supports and reports
// whether anything changed. It must run synchronously right after the table
// is replaced, before any state is rendered, so the draft never holds a
// (time, zone) pair the upstream would reject.
func Reconcile(t Table, d *domain.Draft) bool {
	changed := false
	if d.Time != "" && !t.TimeAvailable(d.Time) {
		d.Time = ""
		changed = true
	}
	if d.ZoneID != nil && d.Time != "" && !t.TimeAvailableForZone(d.Time, d.ZoneID) {
		d.ZoneID = nil
		changed = true
	}
	if d.ZoneID != nil && !t.Empty() && !t.ZoneEverAvailable(*d.ZoneID) {
		d.ZoneID = nil
		changed = true
	}
	return changed
}
