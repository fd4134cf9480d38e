package ports

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
)

// PackFormat is the reference data needed to plan a packaged lot.
type PackFormat struct {
	ID         string
	Name       string
	FillVolume kernel.Volume
}

// ReferenceRepository reads reference data maintained outside the engine:
// the method and QC test catalog, product definitions, cultures and pack
// formats. It never writes.
type ReferenceRepository interface {
	// Catalog returns the method and QC test catalog.
	Catalog(ctx context.Context) (spec.Catalog, error)

	// ProductDefinition returns the requirements declared for a product code.
	ProductDefinition(ctx context.Context, productCode string) (spec.Definition, error)

	// CultureCellType returns the cell type of a culture.
	CultureCellType(ctx context.Context, cultureID kernel.UUID) (string, error)

	PackFormat(ctx context.Context, id string) (PackFormat, error)
}
