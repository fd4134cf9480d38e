package orderrepo

import (
	"context"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return records.Fail("add order", "order", aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update bumps the order version and rewrites its lines.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err = records.UpdateVersioned(db, &OrderDTO{}, "order", dto.ID, aggregate.Version(), map[string]any{}); err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty_fulfilled", "raw_lot_id", "status"}),
	}).Create(&dto.Lines).Error
	if err != nil {
		return records.Fail("update order lines", "order", aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withLines(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, records.Fail("get order", "order", id.String(), err)
	}
	return toDomain(dto)
}

// GetByLine retrieves the order that owns lineID.
func (r *GormOrderRepository) GetByLine(ctx context.Context, lineID kernel.UUID) (*order.Order, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withLines(ctx).
		Where("id = (?)", r.db.Model(&LineDTO{}).Select("order_id").Where("id = ?", lineID.Bytes())).
		First(&dto).Error
	if err != nil {
		return nil, records.Fail("get order by line", "order line", lineID.String(), err)
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	})
}
