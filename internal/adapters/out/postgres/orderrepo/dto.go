// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order row holds the frozen spec placed with it; its lines live in order_lines.
package orderrepo

import (
	"time"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	ProductCode string         `gorm:"size:64;index"`
	FrozenSpec  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
	Version     int
	Lines       []LineDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line. Lines are only written through their order.
type LineDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;index"`
	Position     int        `gorm:"not null"`
	PackFormatID string     `gorm:"size:64"`
	QtyUnits     int        `gorm:"not null"`
	QtyFulfilled int        `gorm:"not null;default:0"`
	RawLotID     *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"size:32;index"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func Models() []any {
	return []any{&OrderDTO{}, &LineDTO{}}
}

// fromDomain converts an order aggregate and its lines to their database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	frozen, err := records.SpecJSON(aggregate.FrozenSpec())
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		ParentID:    records.UUIDPtr(aggregate.ParentID()),
		ProductCode: aggregate.ProductCode(),
		FrozenSpec:  frozen,
		CreatedAt:   aggregate.CreatedAt(),
		Version:     aggregate.Version(),
	}
	for i, l := range aggregate.Lines() {
		dto.Lines = append(dto.Lines, LineDTO{
			ID:           l.ID().Bytes(),
			OrderID:      dto.ID,
			Position:     i,
			PackFormatID: l.PackFormatID(),
			QtyUnits:     l.QtyUnits(),
			QtyFulfilled: l.QtyFulfilled(),
			RawLotID:     records.UUIDPtr(l.RawLotID()),
			Status:       l.Status().String(),
		})
	}
	return dto, nil
}

// toDomain converts a database DTO with preloaded lines to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := records.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	parentID, err := records.KernelUUIDPtr(dto.ParentID)
	if err != nil {
		return nil, err
	}
	frozen, err := records.FrozenSpec(dto.FrozenSpec)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, ld := range dto.Lines {
		lineID, err := records.KernelUUID(ld.ID)
		if err != nil {
			return nil, err
		}
		rawLotID, err := records.KernelUUIDPtr(ld.RawLotID)
		if err != nil {
			return nil, err
		}
		status, err := order.ParseStatus(ld.Status)
		if err != nil {
			return nil, err
		}
		line, err := order.RestoreLine(lineID, dto.ProductCode, ld.PackFormatID, ld.QtyUnits, ld.QtyFulfilled, rawLotID, status)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.RestoreInput{
		ID:          id,
		ParentID:    parentID,
		ProductCode: dto.ProductCode,
		FrozenSpec:  frozen,
		Lines:       lines,
		CreatedAt:   dto.CreatedAt,
		Version:     dto.Version,
	})
}
