package rawlotrepo

import (
	"context"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"

	"gorm.io/gorm"
)

// GormRawLotRepository implements ports.RawLotRepository using GORM.
type GormRawLotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRawLotRepository(db *gorm.DB, tracker aggregateTracker) *GormRawLotRepository {
	return &GormRawLotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new raw lot with its container and any children.
func (r *GormRawLotRepository) Add(ctx context.Context, lot *rawlot.RawLot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	rows, err := fromDomain(lot)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err = db.Create(&rows.lot).Error; err != nil {
		return records.Fail("add raw lot", "raw lot", lot.ID().String(), err)
	}
	if err = r.saveChildren(db, rows); err != nil {
		return err
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

// Update writes the lot row if its stored version matches lot.Version() and
// upserts the children.
func (r *GormRawLotRepository) Update(ctx context.Context, lot *rawlot.RawLot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	rows, err := fromDomain(lot)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	err = records.UpdateVersioned(db, &RawLotDTO{}, "raw lot", rows.lot.ID, lot.Version(), map[string]any{
		"status":              rows.lot.Status,
		"collection_start_at": rows.lot.CollectionStartAt,
		"collection_end_at":   rows.lot.CollectionEndAt,
		"expires_at":          rows.lot.ExpiresAt,
	})
	if err != nil {
		return err
	}
	if err = r.saveChildren(db, rows); err != nil {
		return err
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

func (r *GormRawLotRepository) saveChildren(db *gorm.DB, rows aggregateRows) error {
	if err := rows.children.Save(db); err != nil {
		return records.Fail("save raw lot children", "raw lot", rows.lot.ID.String(), err)
	}
	if len(rows.collections) > 0 {
		if err := db.Save(&rows.collections).Error; err != nil {
			return records.Fail("save collections", "raw lot", rows.lot.ID.String(), err)
		}
	}
	return nil
}

func (r *GormRawLotRepository) Get(ctx context.Context, id kernel.UUID) (*rawlot.RawLot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto RawLotDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, records.Fail("get raw lot", "raw lot", id.String(), err)
	}
	return r.load(db, dto)
}

// FindApproved returns Approved lots, oldest first.
func (r *GormRawLotRepository) FindApproved(ctx context.Context, productCode string) ([]*rawlot.RawLot, error) {
	db := r.db.WithContext(ctx)
	query := db.Where("status = ?", rawlot.Approved.String())
	if productCode != "" {
		query = query.Where("product_code = ?", productCode)
	}

	var dtos []RawLotDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, records.Fail("find approved raw lots", "raw lot", productCode, err)
	}

	lots := make([]*rawlot.RawLot, 0, len(dtos))
	for _, dto := range dtos {
		lot, err := r.load(db, dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

func (r *GormRawLotRepository) load(db *gorm.DB, dto RawLotDTO) (*rawlot.RawLot, error) {
	rows := aggregateRows{lot: dto}
	var err error
	if rows.children, err = records.LoadChildren(db, dto.ID); err != nil {
		return nil, records.Fail("load raw lot children", "raw lot container", dto.ID.String(), err)
	}
	if err = db.Order("collected_at, id").Find(&rows.collections, "raw_lot_id = ?", dto.ID).Error; err != nil {
		return nil, records.Fail("load collections", "raw lot", dto.ID.String(), err)
	}
	return toDomain(rows)
}
