package referencerepo

import (
	"context"
	"strings"

	"exoprotrack/internal/adapters/out/postgres/records"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/ports"

	"gorm.io/gorm"
)

// GormReferenceRepository implements ports.ReferenceRepository using GORM.
// It only reads.
type GormReferenceRepository struct {
	db *gorm.DB
}

func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// Catalog loads every method and QC test.
func (r *GormReferenceRepository) Catalog(ctx context.Context) (spec.Catalog, error) {
	db := r.db.WithContext(ctx)

	var methods []MethodDTO
	if err := db.Order("id").Find(&methods).Error; err != nil {
		return nil, records.Fail("load methods", "method", "*", err)
	}
	var tests []QCTestDTO
	if err := db.Order("code").Find(&tests).Error; err != nil {
		return nil, records.Fail("load qc tests", "qc test", "*", err)
	}

	methodRefs := make([]spec.MethodRef, 0, len(methods))
	for _, m := range methods {
		methodRefs = append(methodRefs, spec.MethodRef{ID: m.ID, Name: m.Name})
	}
	testRefs := make([]spec.TestRef, 0, len(tests))
	for _, t := range tests {
		testRefs = append(testRefs, spec.TestRef{
			Code:     t.Code,
			Name:     t.Name,
			Unit:     t.Unit,
			NormMin:  t.NormMin,
			NormMax:  t.NormMax,
			NormText: t.NormText,
			Method:   t.Method,
		})
	}
	return spec.NewStaticCatalog(methodRefs, testRefs), nil
}

// ProductDefinition returns the requirement list of a product. A product
// without requirements yields an empty definition; an unknown product is
// NotFound.
func (r *GormReferenceRepository) ProductDefinition(ctx context.Context, productCode string) (spec.Definition, error) {
	var dto ProductDTO
	err := r.db.WithContext(ctx).
		Preload("Processing").
		Preload("QC").
		First(&dto, "code = ?", productCode).Error
	if err != nil {
		return spec.Definition{}, records.Fail("get product", "product", productCode, err)
	}

	def := spec.Definition{ProductCode: dto.Code}
	for _, p := range dto.Processing {
		section, err := spec.ParseSection(p.Section)
		if err != nil {
			return spec.Definition{}, err
		}
		def.Processing = append(def.Processing, spec.ProcessingRequirement{
			Section:  section,
			MethodID: p.MethodID,
			Cycles:   p.Cycles,
			Order:    p.Position,
		})
	}
	for _, q := range dto.QC {
		group, err := spec.ParseQCGroup(q.Group)
		if err != nil {
			return spec.Definition{}, err
		}
		def.QC = append(def.QC, spec.QCRequirement{
			Group:    group,
			Code:     q.Code,
			Order:    q.Position,
			NormMin:  q.NormMin,
			NormMax:  q.NormMax,
			NormText: q.NormText,
		})
	}
	return def, nil
}

func (r *GormReferenceRepository) CultureCellType(ctx context.Context, cultureID kernel.UUID) (string, error) {
	if err := cultureID.Validate(); err != nil {
		return "", err
	}

	var dto CultureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", cultureID.Bytes()).Error; err != nil {
		return "", records.Fail("get culture", "culture", cultureID.String(), err)
	}
	return strings.TrimSpace(dto.CellType), nil
}

func (r *GormReferenceRepository) PackFormat(ctx context.Context, id string) (ports.PackFormat, error) {
	var dto PackFormatDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		return ports.PackFormat{}, records.Fail("get pack format", "pack format", id, err)
	}
	fill, err := kernel.NewVolume(dto.FillVolume)
	if err != nil {
		return ports.PackFormat{}, err
	}
	return ports.PackFormat{ID: dto.ID, Name: dto.Name, FillVolume: fill}, nil
}
