package wizard

// Step is a position in the booking flow. Forward navigation is gated on
// the current step's validity; backward navigation never is.
type Step int

const (
	StepPartySize Step = iota + 1
	StepDate
	StepTime
	StepZone
	StepContact
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepPartySize:
		return "party_size"
	case StepDate:
		return "date"
	case StepTime:
		return "time"
	case StepZone:
		return "zone"
	case StepContact:
		return "contact"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	return s >= StepPartySize && s <= StepReview
}
