package spec

import (
	"github.com/shopspring/decimal"
)

// ProcessingMethod is one required processing method, executed Cycles times.
type ProcessingMethod struct {
	MethodID string
	Name     string
	Cycles   int
	Order    int
}

// QCTest is one required QC test with its frozen acceptance norm.
type QCTest struct {
	Code     string
	Name     string
	Unit     string
	NormMin  *decimal.Decimal
	NormMax  *decimal.Decimal
	NormText string
	Method   string
}

// HasNumericNorm reports whether at least one numeric bound is set.
func (t QCTest) HasNumericNorm() bool {
	return t.NormMin != nil || t.NormMax != nil
}

// WithinNorm reports whether value satisfies the numeric bounds, inclusive.
// It returns ok=false when the test carries no numeric norm.
func (t QCTest) WithinNorm(value decimal.Decimal) (within bool, ok bool) {
	if !t.HasNumericNorm() {
		return false, false
	}
	if t.NormMin != nil && value.LessThan(*t.NormMin) {
		return false, true
	}
	if t.NormMax != nil && value.GreaterThan(*t.NormMax) {
		return false, true
	}
	return true, true
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func (t QCTest) clone() QCTest {
	t.NormMin = cloneDecimal(t.NormMin)
	t.NormMax = cloneDecimal(t.NormMax)
	return t
}
