package spec

import (
	"errors"
	"time"

	"exoprotrack/internal/pkg/guard"
)

// ErrFrozenSpecIsNotConstructed is returned for a zero-value FrozenSpec.
var ErrFrozenSpecIsNotConstructed = errors.New("FrozenSpec must be created via Freezer or FromDocument")

// FrozenSpec is the immutable requirement snapshot of one lot or order.
// Accessors return copies; no caller can mutate a frozen spec in place.
type FrozenSpec struct {
	processing map[Section][]ProcessingMethod
	qc         map[QCGroup][]QCTest
	frozenAt   time.Time
	guard      guard.ConstructorGuard
}

// Validate fails for specs that were not produced by this package.
func (s FrozenSpec) Validate() error {
	return s.guard.Validate(ErrFrozenSpecIsNotConstructed)
}

func (s FrozenSpec) FrozenAt() time.Time {
	return s.frozenAt
}

// Processing returns the methods of one section in declared order.
func (s FrozenSpec) Processing(section Section) []ProcessingMethod {
	src := s.processing[section]
	out := make([]ProcessingMethod, len(src))
	copy(out, src)
	return out
}

// QC returns the tests of one group in declared order.
func (s FrozenSpec) QC(group QCGroup) []QCTest {
	src := s.qc[group]
	out := make([]QCTest, 0, len(src))
	for _, t := range src {
		out = append(out, t.clone())
	}
	return out
}

// Method finds a method of a section by id.
func (s FrozenSpec) Method(section Section, methodID string) (ProcessingMethod, bool) {
	for _, m := range s.processing[section] {
		if m.MethodID == methodID {
			return m, true
		}
	}
	return ProcessingMethod{}, false
}

// Test finds a test of a group by code.
func (s FrozenSpec) Test(group QCGroup, code string) (QCTest, bool) {
	for _, t := range s.qc[group] {
		if t.Code == code {
			return t.clone(), true
		}
	}
	return QCTest{}, false
}

func (s FrozenSpec) HasProcessing(section Section) bool {
	return len(s.processing[section]) > 0
}

func (s FrozenSpec) HasQC(group QCGroup) bool {
	return len(s.qc[group]) > 0
}

// Shape summarizes which optional packaged-lot stages the spec requires.
type Shape struct {
	HasPre    bool
	HasPreQC  bool
	HasPost   bool
	HasPostQC bool
}

// Shape reports the packaged-lot stage flags derived from this spec.
func (s FrozenSpec) Shape() Shape {
	return Shape{
		HasPre:    s.HasProcessing(SectionPreFill),
		HasPreQC:  s.HasQC(QCGroupPreFill),
		HasPost:   s.HasProcessing(SectionPostFill),
		HasPostQC: s.HasQC(QCGroupProduct),
	}
}

// TotalCycles sums the cycles of a section.
func (s FrozenSpec) TotalCycles(section Section) int {
	total := 0
	for _, m := range s.processing[section] {
		total += m.Cycles
	}
	return total
}
