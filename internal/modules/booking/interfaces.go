package booking

import (
	"context"

	"github.com/intermediaal/e-table-reservation/internal/domain"
)

// Upstream is the slice of the reservation backend this module consumes.
type Upstream interface {
	Areas(ctx context.Context, slug string) ([]domain.Zone, error)
	Slots(ctx context.Context, slug, date string, guests int) ([]domain.Slot, error)
	CreateReservation(ctx context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error)
	Settings(ctx context.Context, slug string) (*domain.ReservationSettings, error)
	BookingInfo(ctx context.Context, slug string) (*domain.BookingInfo, error)
}
