package booking

import (
	"github.com/intermediaal/e-table-reservation/internal/calendar"
	"github.com/intermediaal/e-table-reservation/internal/domain"
)

// PatchDraftRequest carries partial draft updates; absent fields are left
// untouched. AnyZone=true resets the zone selection to "any zone".
type PatchDraftRequest struct {
	Guests          *int    `json:"guests"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	ZoneID          *int64  `json:"zoneId"`
	AnyZone         *bool   `json:"anyZone"`
	FullName        *string `json:"fullName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	SpecialRequests *string `json:"specialRequests"`
}

// TimeOption is one entry of the offered time universe with its current
// bookability under the selected zone.
type TimeOption struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ZoneOption is one bookable zone with its availability under the selected
// time.
type ZoneOption struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Available bool   `json:"available"`
}

// SessionView is the full wizard state a client needs to render one step.
type SessionView struct {
	SessionID    string       `json:"sessionId"`
	BusinessSlug string       `json:"businessSlug"`
	Step         int          `json:"step"`
	StepName     string       `json:"stepName"`
	Draft        domain.Draft `json:"draft"`
	Times        []TimeOption `json:"times"`
	Zones        []ZoneOption `json:"zones"`
	MaxPartySize int          `json:"maxPartySize"`
	Background   string       `json:"backgroundPhoto,omitempty"`
	Icon         string       `json:"icon,omitempty"`
}

// StartSessionResponse returns the minted session token alongside the
// initial state.
type StartSessionResponse struct {
	SessionToken string      `json:"sessionToken"`
	Session      SessionView `json:"session"`
}

// CalendarCell extends the grid cell with the display-only closed-day flag
// from the business hours.
type CalendarCell struct {
	calendar.Cell
	Closed bool `json:"isClosed"`
}

// CalendarView is one rendered month.
type CalendarView struct {
	Month           string         `json:"month"`
	Label           string         `json:"label"`
	CanNavigateBack bool           `json:"canNavigateBack"`
	Cells           []CalendarCell `json:"cells"`
}

// SubmitResponse hands the caller the server-issued reference token for the
// confirmation view.
type SubmitResponse struct {
	ID        int64  `json:"id"`
	ViewToken string `json:"viewToken"`
	Status    string `json:"status"`
}
