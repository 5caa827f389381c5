package wizard

import "errors"

var (
	ErrGuestsOutOfRange = errors.New("party size out of range")
	ErrDateInvalid      = errors.New("date is missing or in the past")
	ErrTimeRequired     = errors.New("no time selected")
	ErrTimeUnavailable  = errors.New("time is not available")
	ErrZoneUnavailable  = errors.New("zone is not available")
	ErrContactInvalid   = errors.New("contact details are invalid")
	ErrAtFirstStep      = errors.New("already at the first step")
	ErrAtLastStep       = errors.New("already at the review step")
	ErrDraftIncomplete  = errors.New("draft is not ready for submission")
)
