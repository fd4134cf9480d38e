// Package ports defines the persistence contracts of the lot workflow.
// Command and query handlers depend on these interfaces; the postgres
// adapter implements them.
package ports

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
)

// RawLotRepository defines the persistence contract for raw lot aggregates,
// including their container, collections, steps, QC requests and decisions.
type RawLotRepository interface {
	// Add persists a new raw lot.
	Add(ctx context.Context, lot *rawlot.RawLot) error

	// Update persists changes to an existing raw lot. The write succeeds only
	// if the stored version equals lot.Version(); otherwise it fails with
	// errs.ErrVersionIsInvalid.
	Update(ctx context.Context, lot *rawlot.RawLot) error

	// Get retrieves a raw lot with everything it owns.
	Get(ctx context.Context, id kernel.UUID) (*rawlot.RawLot, error)

	// FindApproved retrieves Approved lots of a product, or of every product
	// when productCode is empty. Expiry is not filtered here.
	FindApproved(ctx context.Context, productCode string) ([]*rawlot.RawLot, error)
}
