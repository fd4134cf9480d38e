// Package obligation enumerates the steps and tests a frozen spec requires and
// reports which of them a lot has already satisfied.
//
// Obligations are always listed in the spec's declared order, never in
// completion order, so operators see a stable checklist.
package obligation

import (
	"fmt"
	"strings"

	"exoprotrack/internal/core/domain/model/spec"
)

// Kind tells processing obligations from QC obligations.
type Kind int

const (
	KindProcessing Kind = iota + 1
	KindQC
)

func (k Kind) String() string {
	switch k {
	case KindProcessing:
		return "processing"
	case KindQC:
		return "qc"
	default:
		return "unknown"
	}
}

// StepKey identifies one execution of a method.
type StepKey struct {
	MethodID   string
	Occurrence int
}

func (k StepKey) String() string {
	return fmt.Sprintf("%s#%d", k.MethodID, k.Occurrence)
}

// Obligation is one required step occurrence or test.
type Obligation struct {
	Kind       Kind
	MethodID   string
	Occurrence int
	Code       string
	Name       string
	Satisfied  bool
}

// Key renders the obligation identity, "METHOD#n" or the test code.
func (o Obligation) Key() string {
	if o.Kind == KindProcessing {
		return StepKey{MethodID: o.MethodID, Occurrence: o.Occurrence}.String()
	}
	return o.Code
}

// Checklist is the ordered obligation list of one stage.
type Checklist struct {
	obligations []Obligation
}

// ForProcessing expands every method into Cycles obligations. completed holds
// the keys of steps that have finished.
func ForProcessing(methods []spec.ProcessingMethod, completed map[StepKey]bool) Checklist {
	var total int
	for _, m := range methods {
		total += m.Cycles
	}
	out := make([]Obligation, 0, total)
	for _, m := range methods {
		for occ := 1; occ <= m.Cycles; occ++ {
			out = append(out, Obligation{
				Kind:       KindProcessing,
				MethodID:   m.MethodID,
				Occurrence: occ,
				Name:       m.Name,
				Satisfied:  completed[StepKey{MethodID: m.MethodID, Occurrence: occ}],
			})
		}
	}
	return Checklist{obligations: out}
}

// ForQC lists one obligation per test. recorded holds codes with at least one
// result of any verdict.
func ForQC(tests []spec.QCTest, recorded map[string]bool) Checklist {
	out := make([]Obligation, 0, len(tests))
	for _, t := range tests {
		out = append(out, Obligation{
			Kind:      KindQC,
			Code:      t.Code,
			Name:      t.Name,
			Satisfied: recorded[t.Code],
		})
	}
	return Checklist{obligations: out}
}

func (c Checklist) Obligations() []Obligation {
	out := make([]Obligation, len(c.obligations))
	copy(out, c.obligations)
	return out
}

func (c Checklist) Len() int {
	return len(c.obligations)
}

func (c Checklist) IsEmpty() bool {
	return len(c.obligations) == 0
}

// AllSatisfied is false for an empty checklist. Stages without obligations
// are elided from the state graph instead of being passed through.
func (c Checklist) AllSatisfied() bool {
	if len(c.obligations) == 0 {
		return false
	}
	for _, o := range c.obligations {
		if !o.Satisfied {
			return false
		}
	}
	return true
}

// Missing returns the keys of unsatisfied obligations in declared order.
func (c Checklist) Missing() []string {
	var missing []string
	for _, o := range c.obligations {
		if !o.Satisfied {
			missing = append(missing, o.Key())
		}
	}
	return missing
}

func (c Checklist) String() string {
	parts := make([]string, 0, len(c.obligations))
	for _, o := range c.obligations {
		mark := " "
		if o.Satisfied {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, o.Key()))
	}
	return strings.Join(parts, ", ")
}
