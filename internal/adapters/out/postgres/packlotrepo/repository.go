package packlotrepo

import (
	"context"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"

	"gorm.io/gorm"
)

// GormPackagedLotRepository implements ports.PackagedLotRepository using GORM.
type GormPackagedLotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackagedLotRepository(db *gorm.DB, tracker aggregateTracker) *GormPackagedLotRepository {
	return &GormPackagedLotRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPackagedLotRepository) Add(ctx context.Context, lot *packlot.PackagedLot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	rows, err := fromDomain(lot)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err = db.Create(&rows.lot).Error; err != nil {
		return records.Fail("add packaged lot", "packaged lot", lot.ID().String(), err)
	}
	if err = r.saveChildren(db, rows); err != nil {
		return err
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

func (r *GormPackagedLotRepository) Update(ctx context.Context, lot *packlot.PackagedLot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	rows, err := fromDomain(lot)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	err = records.UpdateVersioned(db, &PackagedLotDTO{}, "packaged lot", rows.lot.ID, lot.Version(), map[string]any{
		"status":       rows.lot.Status,
		"qty_produced": rows.lot.QtyProduced,
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

func (r *GormPackagedLotRepository) saveChildren(db *gorm.DB, rows aggregateRows) error {
	if err := rows.children.Save(db); err != nil {
		return records.Fail("save packaged lot children", "packaged lot", rows.lot.ID.String(), err)
	}
	if len(rows.shipments) > 0 {
		if err := db.Save(&rows.shipments).Error; err != nil {
			return records.Fail("save shipments", "packaged lot", rows.lot.ID.String(), err)
		}
	}
	return nil
}

func (r *GormPackagedLotRepository) Get(ctx context.Context, id kernel.UUID) (*packlot.PackagedLot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto PackagedLotDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, records.Fail("get packaged lot", "packaged lot", id.String(), err)
	}
	return r.load(db, dto)
}

func (r *GormPackagedLotRepository) FindByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*packlot.PackagedLot, error) {
	if err := rawLotID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dtos []PackagedLotDTO
	if err := db.Order("created_at, id").Find(&dtos, "raw_lot_id = ?", rawLotID.Bytes()).Error; err != nil {
		return nil, records.Fail("find packaged lots", "raw lot", rawLotID.String(), err)
	}

	lots := make([]*packlot.PackagedLot, 0, len(dtos))
	for _, dto := range dtos {
		lot, err := r.load(db, dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

func (r *GormPackagedLotRepository) load(db *gorm.DB, dto PackagedLotDTO) (*packlot.PackagedLot, error) {
	rows := aggregateRows{lot: dto}
	var err error
	if rows.children, err = records.LoadChildren(db, dto.ID); err != nil {
		return nil, records.Fail("load packaged lot children", "packaged lot container", dto.ID.String(), err)
	}
	if err = db.Order("shipped_at, id").Find(&rows.shipments, "packaged_lot_id = ?", dto.ID).Error; err != nil {
		return nil, records.Fail("load shipments", "packaged lot", dto.ID.String(), err)
	}
	return toDomain(rows)
}
