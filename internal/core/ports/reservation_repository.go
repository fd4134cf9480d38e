package ports

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/reservation"
)

// ReservationRepository defines the persistence contract for reservations.
type ReservationRepository interface {
	Add(ctx context.Context, r *reservation.Reservation) error

	// Update is conditional on r.Version().
	Update(ctx context.Context, r *reservation.Reservation) error

	Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error)

	// FindActiveByRawLot lists the Active reservations held on a raw lot.
	FindActiveByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*reservation.Reservation, error)

	// FindActive lists every Active reservation, oldest first.
	FindActive(ctx context.Context) ([]*reservation.Reservation, error)
}
