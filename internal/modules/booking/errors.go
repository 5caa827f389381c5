package booking

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrBookingInactive = errors.New("online booking is disabled for this business")
	ErrBadMonth        = errors.New("invalid calendar month")
)
