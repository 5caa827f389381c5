package domain

// Draft is the in-progress reservation the wizard assembles. Empty time and
// nil zone are valid mid-flow; everything except SpecialRequests and ZoneID
// must be populated before submission.
type Draft struct {
	Guests          int    `json:"guests"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	ZoneID          *int64 `json:"zoneId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

// ContactDetails is the validated subset of the draft collected on the
// contact step.
type ContactDetails struct {
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,phone"`
}

// Contact extracts the contact fields for validation.
func (d Draft) Contact() ContactDetails {
	return ContactDetails{
		FullName: d.FullName,
		Email:    d.Email,
		Phone:    d.Phone,
	}
}
