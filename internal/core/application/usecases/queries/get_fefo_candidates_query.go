package queries

import (
	"errors"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/guard"
)

var ErrGetFEFOCandidatesQueryIsNotConstructed = errors.New(
	"GetFEFOCandidatesQuery must be created via NewGetFEFOCandidatesQuery constructor",
)

// GetFEFOCandidatesQuery lists the raw lots an order line can be allocated
// from, first expiring first. An empty product code lists every product.
type GetFEFOCandidatesQuery struct {
	productCode string
	guard       guard.ConstructorGuard
}

func NewGetFEFOCandidatesQuery(productCode string) GetFEFOCandidatesQuery {
	return GetFEFOCandidatesQuery{
		productCode: strings.TrimSpace(productCode),
		guard:       guard.NewConstructorGuard(),
	}
}

func (q GetFEFOCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetFEFOCandidatesQueryIsNotConstructed)
}

func (q GetFEFOCandidatesQuery) ProductCode() string {
	return q.productCode
}

// FEFOCandidate is an Approved, unexpired raw lot with its free volume.
type FEFOCandidate struct {
	RawLotID    kernel.UUID
	ProductCode string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	Current     kernel.Volume
	Available   kernel.Volume
}
