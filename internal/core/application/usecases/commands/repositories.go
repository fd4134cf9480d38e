// Package commands contains business operations that modify system state.
// Every command is a validated value built by its constructor; its handler
// loads the aggregates it needs inside one unit of work, applies the domain
// operation and persists the result, or rolls everything back.
package commands

import (
	"context"

	"exoprotrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RawLotRepoFactory interface {
		RawLotRepository() ports.RawLotRepository
	}

	PackagedLotRepoFactory interface {
		PackagedLotRepository() ports.PackagedLotRepository
	}

	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ReferenceRepoFactory interface {
		ReferenceRepository() ports.ReferenceRepository
	}

	// UoW gives a handler every repository bound to one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   lots := uow.RawLotRepository()
	//   reservations := uow.ReservationRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RawLotRepoFactory
		PackagedLotRepoFactory
		ReservationRepoFactory
		OrderRepoFactory
		ReferenceRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// inTx runs fn inside a fresh unit of work and commits when fn succeeds.
func inTx(ctx context.Context, f UoWFactory, fn func(uow UoW) error) error {
	uow := f.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
