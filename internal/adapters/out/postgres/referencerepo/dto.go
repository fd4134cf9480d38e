// Package referencerepo reads reference data maintained outside the lot
// workflow: the method and QC test catalog, product requirement lists,
// cultures and pack formats.
package referencerepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MethodDTO struct {
	ID   string `gorm:"size:64;primaryKey"`
	Name string
}

func (MethodDTO) TableName() string { return "methods" }

type QCTestDTO struct {
	Code     string `gorm:"size:64;primaryKey"`
	Name     string
	Unit     string
	NormMin  *decimal.Decimal `gorm:"type:decimal(20,4)"`
	NormMax  *decimal.Decimal `gorm:"type:decimal(20,4)"`
	NormText string
	Method   string
}

func (QCTestDTO) TableName() string { return "qc_tests" }

type ProductDTO struct {
	Code       string `gorm:"size:64;primaryKey"`
	Name       string
	Processing []ProductProcessingDTO `gorm:"foreignKey:ProductCode"`
	QC         []ProductQCDTO         `gorm:"foreignKey:ProductCode"`
}

func (ProductDTO) TableName() string { return "products" }

// ProductProcessingDTO asks for a method in one section of a product.
type ProductProcessingDTO struct {
	ProductCode string `gorm:"size:64;primaryKey"`
	Section     string `gorm:"size:16;primaryKey"`
	MethodID    string `gorm:"size:64;primaryKey"`
	Cycles      int    `gorm:"not null;default:1"`
	Position    int
}

func (ProductProcessingDTO) TableName() string { return "product_processing" }

// ProductQCDTO asks for a test in one QC group of a product. Non-null norms
// override the catalog.
type ProductQCDTO struct {
	ProductCode string `gorm:"size:64;primaryKey"`
	Group       string `gorm:"column:qc_group;size:16;primaryKey"`
	Code        string `gorm:"size:64;primaryKey"`
	Position    int
	NormMin     *decimal.Decimal `gorm:"type:decimal(20,4)"`
	NormMax     *decimal.Decimal `gorm:"type:decimal(20,4)"`
	NormText    string
}

func (ProductQCDTO) TableName() string { return "product_qc" }

type CultureDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CellType string    `gorm:"size:64"`
}

func (CultureDTO) TableName() string { return "cultures" }

type PackFormatDTO struct {
	ID         string `gorm:"size:64;primaryKey"`
	Name       string
	FillVolume decimal.Decimal `gorm:"type:decimal(20,4)"`
}

func (PackFormatDTO) TableName() string { return "pack_formats" }

func Models() []any {
	return []any{
		&MethodDTO{}, &QCTestDTO{}, &ProductDTO{}, &ProductProcessingDTO{}, &ProductQCDTO{},
		&CultureDTO{}, &PackFormatDTO{},
	}
}
