package reservationrepo

import (
	"context"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/reservation"

	"gorm.io/gorm"
)

// GormReservationRepository implements ports.ReservationRepository using GORM.
type GormReservationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReservationRepository(db *gorm.DB, tracker aggregateTracker) *GormReservationRepository {
	return &GormReservationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormReservationRepository) Add(ctx context.Context, res *reservation.Reservation) error {
	if err := res.Validate(); err != nil {
		return err
	}

	dto := fromDomain(res)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return records.Fail("add reservation", "reservation", res.ID().String(), err)
	}

	r.tracker.TrackAggregate(res.ID(), res)
	return nil
}

// Update persists a status change. Volume and owner never change after
// creation.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	if err := res.Validate(); err != nil {
		return err
	}

	dto := fromDomain(res)
	err := records.UpdateVersioned(r.db.WithContext(ctx), &ReservationDTO{}, "reservation", dto.ID, res.Version(), map[string]any{
		"status":        dto.Status,
		"cancel_reason": dto.CancelReason,
		"closed_at":     dto.ClosedAt,
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(res.ID(), res)
	return nil
}

func (r *GormReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, records.Fail("get reservation", "reservation", id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormReservationRepository) FindActiveByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*reservation.Reservation, error) {
	if err := rawLotID.Validate(); err != nil {
		return nil, err
	}
	return r.findActive(ctx, "find reservations of raw lot", r.db.Where("raw_lot_id = ?", rawLotID.Bytes()))
}

func (r *GormReservationRepository) FindActive(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.findActive(ctx, "find active reservations", r.db)
}

func (r *GormReservationRepository) findActive(ctx context.Context, op string, scope *gorm.DB) ([]*reservation.Reservation, error) {
	var dtos []ReservationDTO
	err := scope.WithContext(ctx).
		Where("status = ?", reservation.Active.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, records.Fail(op, "reservation", "active", err)
	}

	out := make([]*reservation.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		res, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
