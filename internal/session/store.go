// Package session parks wizard state between HTTP requests. It replaces
// the original's ambient cross-page handoff buffer with an explicit,
// injected key-value store: set, get, clear, scoped to one session id with
// a TTL.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

var ErrNotFound = errors.New("session not found")

// State is everything one wizard session carries between requests.
type State struct {
	BusinessSlug string                     `json:"businessSlug"`
	Step         wizard.Step                `json:"step"`
	Draft        domain.Draft               `json:"draft"`
	Zones        []domain.Zone              `json:"zones"`
	Settings     domain.ReservationSettings `json:"settings"`
	MaxPartySize int                        `json:"maxPartySize"`
	Slots        []domain.Slot              `json:"slots"`
	FetchedFor   string                     `json:"fetchedFor"`
	CreatedAt    time.Time                  `json:"createdAt"`
}

// Store holds session state keyed by session id. Implementations must
// return ErrNotFound for missing or expired ids.
type Store interface {
	Set(ctx context.Context, id string, s *State, ttl time.Duration) error
	Get(ctx context.Context, id string) (*State, error)
	Clear(ctx context.Context, id string) error
}
