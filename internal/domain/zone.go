package domain

// Zone is a named seating section a customer may request. Reference data
// scoped to one business, fetched once per session.
type Zone struct {
	ID   int64  `json:"id"`
	Name string `json:"areaName"`
	Icon string `json:"icon"`
}

// ZoneName resolves a zone id against the catalog. A nil id means the
// customer accepted any available zone.
func ZoneName(zones []Zone, id *int64) string {
	if id == nil {
		return "Any Available Zone"
	}
	for _, z := range zones {
		if z.ID == *id {
			return z.Name
		}
	}
	return ""
}
