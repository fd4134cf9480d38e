// Package rawlotrepo persists raw lot aggregates. The lot row carries the
// frozen spec as jsonb and a denormalized expires_at column so that FEFO
// queries can order by expiry without reading decisions.
package rawlotrepo

import (
	"time"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RawLotDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProductCode       string         `gorm:"size:64;index"`
	Mode              string         `gorm:"size:16"`
	Status            string         `gorm:"size:32;index"`
	FrozenSpec        datatypes.JSON `gorm:"type:jsonb;not null"`
	SourceOrderLineID *uuid.UUID     `gorm:"type:uuid;index"`
	CollectionStartAt *time.Time
	CollectionEndAt   *time.Time
	ExpiresAt         *time.Time `gorm:"index"`
	CreatedAt         time.Time
	Version           int
}

func (RawLotDTO) TableName() string {
	return "raw_lots"
}

type CollectionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RawLotID    uuid.UUID       `gorm:"type:uuid;index"`
	Volume      decimal.Decimal `gorm:"type:decimal(20,4)"`
	CultureID   uuid.UUID       `gorm:"type:uuid"`
	CellType    string          `gorm:"size:64"`
	MediaSpecID string          `gorm:"size:64"`
	CollectedAt time.Time
	Operator    string
}

func (CollectionDTO) TableName() string {
	return "collections"
}

// Models lists every table the repository writes.
func Models() []any {
	return []any{&RawLotDTO{}, &CollectionDTO{}}
}

type aggregateRows struct {
	lot         RawLotDTO
	collections []CollectionDTO
	children    records.LotChildren
}

func fromDomain(lot *rawlot.RawLot) (aggregateRows, error) {
	frozen, err := records.SpecJSON(lot.FrozenSpec())
	if err != nil {
		return aggregateRows{}, err
	}
	rows := aggregateRows{
		lot: RawLotDTO{
			ID:                lot.ID().Bytes(),
			ProductCode:       lot.ProductCode(),
			Mode:              lot.Mode().String(),
			Status:            lot.Status().String(),
			FrozenSpec:        frozen,
			SourceOrderLineID: records.UUIDPtr(lot.SourceOrderLineID()),
			CollectionStartAt: lot.CollectionStartAt(),
			CollectionEndAt:   lot.CollectionEndAt(),
			CreatedAt:         lot.CreatedAt(),
			Version:           lot.Version(),
		},
		children: records.ChildrenFromDomain(lot.ID(), lot.Container(), lot.Steps(), lot.QCRequests(), lot.Decisions()),
	}
	if exp, ok := lot.ExpiryDate(); ok {
		rows.lot.ExpiresAt = &exp
	}
	for _, c := range lot.Collections() {
		rows.collections = append(rows.collections, CollectionDTO{
			ID:          c.ID().Bytes(),
			RawLotID:    lot.ID().Bytes(),
			Volume:      c.Volume().Decimal(),
			CultureID:   c.CultureID().Bytes(),
			CellType:    c.CellType(),
			MediaSpecID: c.MediaSpecID(),
			CollectedAt: c.CollectedAt(),
			Operator:    c.Operator(),
		})
	}
	return rows, nil
}

func toDomain(rows aggregateRows) (*rawlot.RawLot, error) {
	dto := rows.lot
	id, err := records.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	mode, err := rawlot.ParseMode(dto.Mode)
	if err != nil {
		return nil, err
	}
	status, err := rawlot.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	frozen, err := records.FrozenSpec(dto.FrozenSpec)
	if err != nil {
		return nil, err
	}
	sourceLine, err := records.KernelUUIDPtr(dto.SourceOrderLineID)
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

	collections := make([]*rawlot.Collection, 0, len(rows.collections))
	for _, cd := range rows.collections {
		collection, err := toCollection(cd)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}

	return rawlot.RestoreRawLot(rawlot.RestoreInput{
		ID:                id,
		ProductCode:       dto.ProductCode,
		Mode:              mode,
		Status:            status,
		FrozenSpec:        frozen,
		Container:         c,
		SourceOrderLineID: sourceLine,
		CollectionStartAt: dto.CollectionStartAt,
		CollectionEndAt:   dto.CollectionEndAt,
		Collections:       collections,
		Steps:             steps,
		QCRequests:        requests,
		Decisions:         decisions,
		CreatedAt:         dto.CreatedAt,
		Version:           dto.Version,
	})
}

func toCollection(dto CollectionDTO) (*rawlot.Collection, error) {
	id, err := records.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	culture, err := records.KernelUUID(dto.CultureID)
	if err != nil {
		return nil, err
	}
	volume, err := kernel.NewVolume(dto.Volume)
	if err != nil {
		return nil, err
	}
	return rawlot.RestoreCollection(id, rawlot.CollectionInput{
		Volume:      volume,
		CultureID:   culture,
		CellType:    dto.CellType,
		MediaSpecID: dto.MediaSpecID,
		CollectedAt: dto.CollectedAt,
		Operator:    dto.Operator,
	})
}
