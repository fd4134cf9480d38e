// Package reservationrepo persists reservations of raw-lot volume.
package reservationrepo

import (
	"time"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/reservation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RawLotID     uuid.UUID       `gorm:"type:uuid;index:idx_reservations_lot_status"`
	OrderLineID  uuid.UUID       `gorm:"type:uuid;index"`
	Volume       decimal.Decimal `gorm:"type:decimal(20,4)"`
	Status       string          `gorm:"size:16;index:idx_reservations_lot_status"`
	CancelReason string
	CreatedAt    time.Time
	ClosedAt     *time.Time
	Version      int
}

func (ReservationDTO) TableName() string {
	return "reservations"
}

func Models() []any {
	return []any{&ReservationDTO{}}
}

func fromDomain(r *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:           r.ID().Bytes(),
		RawLotID:     r.RawLotID().Bytes(),
		OrderLineID:  r.OrderLineID().Bytes(),
		Volume:       r.Volume().Decimal(),
		Status:       r.Status().String(),
		CancelReason: r.CancelReason(),
		CreatedAt:    r.CreatedAt(),
		ClosedAt:     r.ClosedAt(),
		Version:      r.Version(),
	}
}

func toDomain(dto ReservationDTO) (*reservation.Reservation, error) {
	id, err := records.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	lotID, err := records.KernelUUID(dto.RawLotID)
	if err != nil {
		return nil, err
	}
	lineID, err := records.KernelUUID(dto.OrderLineID)
	if err != nil {
		return nil, err
	}
	volume, err := kernel.NewVolume(dto.Volume)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return reservation.RestoreReservation(id, lotID, lineID, volume, status, dto.CancelReason, dto.CreatedAt, dto.ClosedAt, dto.Version)
}
