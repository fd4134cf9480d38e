// Package packlotrepo persists packaged lot aggregates and their shipments.
package packlotrepo

import (
	"time"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PackagedLotDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RawLotID     uuid.UUID       `gorm:"type:uuid;index"`
	PackFormatID string          `gorm:"size:64"`
	FillVolume   decimal.Decimal `gorm:"type:decimal(20,4)"`
	QtyPlanned   int
	QtyProduced  *int
	Status       string         `gorm:"size:32;index"`
	FrozenSpec   datatypes.JSON `gorm:"type:jsonb;not null"`
	OrderID      *uuid.UUID     `gorm:"type:uuid;index"`
	OrderLineID  *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	Version      int
}

func (PackagedLotDTO) TableName() string {
	return "packaged_lots"
}

type ShipmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackagedLotID uuid.UUID `gorm:"type:uuid;index"`
	Qty           int
	Reference     string
	ShippedAt     time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func Models() []any {
	return []any{&PackagedLotDTO{}, &ShipmentDTO{}}
}

type aggregateRows struct {
	lot       PackagedLotDTO
	shipments []ShipmentDTO
	children  records.LotChildren
}

func fromDomain(lot *packlot.PackagedLot) (aggregateRows, error) {
	frozen, err := records.SpecJSON(lot.FrozenSpec())
	if err != nil {
		return aggregateRows{}, err
	}
	rows := aggregateRows{
		lot: PackagedLotDTO{
			ID:           lot.ID().Bytes(),
			RawLotID:     lot.RawLotID().Bytes(),
			PackFormatID: lot.PackFormatID(),
			FillVolume:   lot.FillVolume().Decimal(),
			QtyPlanned:   lot.QtyPlanned(),
			Status:       lot.Status().String(),
			FrozenSpec:   frozen,
			OrderID:      records.UUIDPtr(lot.OrderID()),
			OrderLineID:  records.UUIDPtr(lot.OrderLineID()),
			CreatedAt:    lot.CreatedAt(),
			Version:      lot.Version(),
		},
		children: records.ChildrenFromDomain(lot.ID(), lot.Container(), lot.Steps(), lot.QCRequests(), lot.Decisions()),
	}
	if lot.HasProduced() {
		produced := lot.QtyProduced()
		rows.lot.QtyProduced = &produced
	}
	for _, s := range lot.Shipments() {
		rows.shipments = append(rows.shipments, ShipmentDTO{
			ID:            s.ID().Bytes(),
			PackagedLotID: lot.ID().Bytes(),
			Qty:           s.Qty(),
			Reference:     s.Reference(),
			ShippedAt:     s.ShippedAt(),
		})
	}
	return rows, nil
}

func toDomain(rows aggregateRows) (*packlot.PackagedLot, error) {
	dto := rows.lot
	id, err := records.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	rawLotID, err := records.KernelUUID(dto.RawLotID)
	if err != nil {
		return nil, err
	}
	fill, err := kernel.NewVolume(dto.FillVolume)
	if err != nil {
		return nil, err
	}
	status, err := packlot.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	frozen, err := records.FrozenSpec(dto.FrozenSpec)
	if err != nil {
		return nil, err
	}
	orderID, err := records.KernelUUIDPtr(dto.OrderID)
	if err != nil {
		return nil, err
	}
	lineID, err := records.KernelUUIDPtr(dto.OrderLineID)
	if err != nil {
		return nil, err
	}

	c, err := rows.children.ToContainer()
	if err != nil {
		return nil, err
	}
	steps, err := rows.children.ToSteps()
	if err != nil {
		return nil, err
	}
	requests, err := rows.children.ToRequests()
	if err != nil {
		return nil, err
	}
	decisions, err := rows.children.ToDecisions()
	if err != nil {
		return nil, err
	}

	shipments := make([]*packlot.Shipment, 0, len(rows.shipments))
	for _, sd := range rows.shipments {
		shipmentID, err := records.KernelUUID(sd.ID)
		if err != nil {
			return nil, err
		}
		s, err := packlot.NewShipment(shipmentID, sd.Qty, sd.Reference, sd.ShippedAt)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return packlot.RestorePackagedLot(packlot.RestoreInput{
		ID:           id,
		RawLotID:     rawLotID,
		PackFormatID: dto.PackFormatID,
		FillVolume:   fill,
		QtyPlanned:   dto.QtyPlanned,
		QtyProduced:  dto.QtyProduced,
		Status:       status,
		FrozenSpec:   frozen,
		OrderID:      orderID,
		OrderLineID:  lineID,
		Container:    c,
		Steps:        steps,
		QCRequests:   requests,
		Decisions:    decisions,
		Shipments:    shipments,
		CreatedAt:    dto.CreatedAt,
		Version:      dto.Version,
	})
}
