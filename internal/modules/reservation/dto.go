package reservation

// ViewResponse is the confirmation page's data: the raw record fields plus
// the display strings derived from them. Status "NOT_FOUND" marks an
// invalid or expired token.
type ViewResponse struct {
	ID             int64  `json:"id,omitempty"`
	CustomerName   string `json:"customerName,omitempty"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
	CustomerPhone  string `json:"customerPhone,omitempty"`
	Date           string `json:"date,omitempty"`
	FormattedDate  string `json:"formattedDate,omitempty"`
	Time           string `json:"time,omitempty"`
	Guests         int    `json:"guests,omitempty"`
	GuestsLabel    string `json:"guestsLabel,omitempty"`
	ZoneName       string `json:"zoneName,omitempty"`
	Status         string `json:"status"`
	SpecialRequest string `json:"specialRequest,omitempty"`
	ViewToken      string `json:"viewToken"`
}

// CancelResponse wraps the refreshed record with the outcome message.
type CancelResponse struct {
	Message     string        `json:"message"`
	Reservation *ViewResponse `json:"reservation"`
}
