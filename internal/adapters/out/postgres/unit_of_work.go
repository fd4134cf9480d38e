// Package postgres provides a GORM-based implementation of the Unit of Work
// pattern. A unit of work hands out repositories bound to one transaction so
// a command can change raw lots, packaged lots, reservations and orders
// atomically.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.RawLotRepository().Update(ctx, lot); err != nil {
//	    return err
//	}
//	if err := uow.ReservationRepository().Add(ctx, r); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Aggregate writes are conditional on the loaded version; a lost race
//     surfaces as errs.ErrVersionIsInvalid on Update
//   - Driver failures in Begin, Commit and Rollback surface as
//     errs.ErrStoreFailure
package postgres

import (
	"context"

	"exoprotrack/internal/adapters/out/postgres/orderrepo"
	"exoprotrack/internal/adapters/out/postgres/packlotrepo"
	"exoprotrack/internal/adapters/out/postgres/rawlotrepo"
	"exoprotrack/internal/adapters/out/postgres/referencerepo"
	"exoprotrack/internal/adapters/out/postgres/reservationrepo"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/ports"
	"exoprotrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records every
// aggregate its repositories write.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return errs.NewStoreFailureError("begin", err)
	}

	return nil
}

// Commit finalizes the current transaction. It fails with
// gorm.ErrInvalidTransaction when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return errs.NewStoreFailureError("commit", err)
}

// Rollback discards the current transaction. It fails with
// gorm.ErrInvalidTransaction when none is open, which makes a deferred
// Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return errs.NewStoreFailureError("rollback", err)
}

// conn returns the open transaction, or the pool when there is none.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) RawLotRepository() ports.RawLotRepository {
	return rawlotrepo.NewGormRawLotRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PackagedLotRepository() ports.PackagedLotRepository {
	return packlotrepo.NewGormPackagedLotRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReservationRepository() ports.ReservationRepository {
	return reservationrepo.NewGormReservationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ReferenceRepository reads through the transaction too, so reference data
// and the aggregates built from it are seen at the same snapshot.
func (uow *GormUnitOfWork) ReferenceRepository() ports.ReferenceRepository {
	return referencerepo.NewGormReferenceRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes this unit of work has seen.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
