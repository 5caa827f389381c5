package domain

import "strings"

// ReservationConfig is the per-business booking configuration.
type ReservationConfig struct {
	IsActive          bool   `json:"isActive"`
	Path              string `json:"path"`
	ConfirmationEmail string `json:"confirmationEmail"`
	GlobalStartTime   string `json:"globalStartTime"`
	GlobalEndTime     string `json:"globalEndTime"`
	BackgroundPhoto   string `json:"backgroundPhoto"`
	Icon              string `json:"icon"`
}

// DayHours describes one weekday's service hours. Closed days are a
// display-only rule: the calendar disables them, availability stays the
// source of truth for bookability.
type DayHours struct {
	DayOfWeek string `json:"dayOfWeek"`
	Closed    bool   `json:"closed"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ReservationSettings is the full per-business settings document.
type ReservationSettings struct {
	Config ReservationConfig `json:"config"`
	Hours  []DayHours        `json:"hours"`
}

// ClosedOn reports whether the business marks the named weekday
// ("monday".."sunday", case-insensitive upstream) as closed.
func (s ReservationSettings) ClosedOn(weekday string) bool {
	for _, h := range s.Hours {
		if strings.EqualFold(h.DayOfWeek, weekday) {
			return h.Closed
		}
	}
	return false
}

// BookingInfo carries per-business booking limits.
type BookingInfo struct {
	MaxPartySize int `json:"maxPartySize"`
}
