package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong talking to the reservation backend. Every
// kind maps to one display message; none of them propagate as uncaught
// failures.
type Kind int

const (
	// KindUnreachable is a transport failure: no response at all.
	KindUnreachable Kind = iota
	// KindInvalid is a 4xx: the request was understood and refused.
	KindInvalid
	// KindServer is a 5xx.
	KindServer
	// KindNotFound is a missing resource, typically an invalid or expired
	// view token.
	KindNotFound
)

// APIError is the typed error every client method returns on failure. The
// message is already display-ready: the upstream's own message when it sent
// one, a per-kind fallback otherwise.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("upstream: %s", e.Message)
}

const (
	msgUnreachable = "Cannot reach the reservation server. Please check your internet connection."
	msgInvalid     = "The submitted data is not valid. Please check all fields."
	msgServer      = "Something went wrong on the server. Please try again in a few minutes."
	msgNotFound    = "Reservation not found."
)

// IsNotFound reports whether err is an upstream not-found.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == KindNotFound
}

// DisplayMessage extracts the user-facing message from a client error,
// falling back to a generic one for unexpected error values.
func DisplayMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Something went wrong. Please try again."
}
