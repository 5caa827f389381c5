// Package reservation serves the confirmation side of the flow: looking up
// a reservation by its view token and cancelling it. Both operations proxy
// the upstream; an unknown token is a terminal display state, not an error.
package reservation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
)

// Upstream is the slice of the backend this module consumes.
type Upstream interface {
	Areas(ctx context.Context, slug string) ([]domain.Zone, error)
	Reservation(ctx context.Context, viewToken string) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, viewToken string) error
}

type Service struct {
	up   Upstream
	slug string
	log  *zap.Logger
}

// NewService builds the service; slug names the business whose zone catalog
// resolves zone ids to display names.
func NewService(up Upstream, slug string, log *zap.Logger) *Service {
	return &Service{up: up, slug: slug, log: log}
}

// View fetches a reservation by token. An invalid or expired token yields a
// NOT_FOUND view, not an error.
func (s *Service) View(ctx context.Context, viewToken string) (*ViewResponse, error) {
	r, err := s.up.Reservation(ctx, viewToken)
	if err != nil {
		if upstream.IsNotFound(err) {
			return &ViewResponse{Status: string(domain.ReservationNotFound), ViewToken: viewToken}, nil
		}
		return nil, err
	}

	zoneName := domain.ZoneName(nil, r.ZoneID)
	if r.ZoneID != nil {
		zones, zerr := s.up.Areas(ctx, s.slug)
		if zerr != nil {
			// The record is still displayable without the zone catalog.
			s.log.Warn("zone catalog unavailable", zap.Error(zerr))
		} else {
			zoneName = domain.ZoneName(zones, r.ZoneID)
		}
	}

	return &ViewResponse{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		Date:           r.Date,
		FormattedDate:  formatDate(r.Date),
		Time:           formatTime(r.StartTime),
		Guests:         r.Guests,
		GuestsLabel:    guestsLabel(r.Guests),
		ZoneName:       zoneName,
		Status:         string(r.Status),
		SpecialRequest: specialRequest(r.SpecialRequest),
		ViewToken:      r.ViewToken,
	}, nil
}

// Cancel cancels the reservation behind the token and returns the fresh
// record. A refused cancellation leaves the reservation unchanged; the
// upstream's reason travels back as the error.
func (s *Service) Cancel(ctx context.Context, viewToken string) (*ViewResponse, error) {
	if err := s.up.CancelReservation(ctx, viewToken); err != nil {
		return nil, err
	}
	return s.View(ctx, viewToken)
}

func formatDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("2 January 2006")
}

// formatTime trims trailing seconds off an upstream "HH:MM:SS".
func formatTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

func guestsLabel(n int) string {
	if n == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d people", n)
}

func specialRequest(s string) string {
	if s == "" {
		return "No special requests"
	}
	return s
}
