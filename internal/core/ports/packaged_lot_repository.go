package ports

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"
)

// PackagedLotRepository defines the persistence contract for packaged lot aggregates.
type PackagedLotRepository interface {
	Add(ctx context.Context, lot *packlot.PackagedLot) error

	// Update is conditional on lot.Version(), like RawLotRepository.Update.
	Update(ctx context.Context, lot *packlot.PackagedLot) error

	Get(ctx context.Context, id kernel.UUID) (*packlot.PackagedLot, error)

	// FindByRawLot lists packaged lots filled from one raw lot, oldest first.
	FindByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*packlot.PackagedLot, error)
}
