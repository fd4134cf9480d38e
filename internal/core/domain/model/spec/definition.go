package spec

import (
	"github.com/shopspring/decimal"
)

// Definition is the mutable requirement list of a finished product or an
// order. It references catalog entries by id and may override test norms.
type Definition struct {
	ProductCode string
	Processing  []ProcessingRequirement
	QC          []QCRequirement
}

// ProcessingRequirement asks for one catalog method in one section.
// Cycles of zero means one cycle.
type ProcessingRequirement struct {
	Section  Section
	MethodID string
	Cycles   int
	Order    int
}

// QCRequirement asks for one catalog test in one group. Non-nil norms and a
// non-empty NormText replace the catalog defaults.
type QCRequirement struct {
	Group    QCGroup
	Code     string
	Order    int
	NormMin  *decimal.Decimal
	NormMax  *decimal.Decimal
	NormText string
}

// IsEmpty reports whether the definition requires nothing at all.
func (d Definition) IsEmpty() bool {
	return len(d.Processing) == 0 && len(d.QC) == 0
}
