package domain

// Slot is the upstream's answer for one time-of-day on one date and party
// size: the set of zone ids still bookable at that time. The time may carry
// trailing seconds ("19:00:00") depending on the upstream serializer.
type Slot struct {
	Time             string  `json:"time"`
	AvailableZoneIDs []int64 `json:"availableAreaIds"`
}

// HasZone reports whether the slot lists zoneID as bookable.
func (s Slot) HasZone(zoneID int64) bool {
	for _, id := range s.AvailableZoneIDs {
		if id == zoneID {
			return true
		}
	}
	return false
}
