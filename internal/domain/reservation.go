package domain

type ReservationStatus string

const (
	ReservationConfirmed       ReservationStatus = "CONFIRMED"
	ReservationPendingApproval ReservationStatus = "PENDING_APPROVAL"
	ReservationCancelled       ReservationStatus = "CANCELLED"
	// ReservationNotFound is a display state for an invalid or expired view
	// token, never a value the upstream returns.
	ReservationNotFound ReservationStatus = "NOT_FOUND"
)

// ReservationRequest is the payload sent to the upstream on submission.
// A nil ZoneID omits the zone constraint entirely ("any zone").
type ReservationRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
	Requests      string `json:"requests"`
	ZoneID        *int64 `json:"areaId,omitempty"`
	BusinessSlug  string `json:"businessSlug"`
}

// CreatedReservation is the upstream's answer to a successful creation.
// The view token is the only handle the customer keeps.
type CreatedReservation struct {
	ID        int64             `json:"id"`
	ViewToken string            `json:"viewToken"`
	Status    ReservationStatus `json:"status"`
}

// Reservation is the record fetched back by view token.
type Reservation struct {
	ID             int64             `json:"id"`
	CustomerName   string            `json:"customerName"`
	CustomerEmail  string            `json:"customerEmail"`
	CustomerPhone  string            `json:"customerPhone"`
	Date           string            `json:"date"`
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	Guests         int               `json:"guests"`
	TableIDs       []int64           `json:"tableIds"`
	Status         ReservationStatus `json:"status"`
	SpecialRequest string            `json:"specialRequest"`
	ZoneID         *int64            `json:"areaId"`
	ViewToken      string            `json:"viewToken"`
}
