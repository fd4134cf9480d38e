package spec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Document is the serialized form of a FrozenSpec, stored as jsonb.
type Document struct {
	Processing ProcessingDocument `json:"processing"`
	QC         QCDocument         `json:"qc"`
	FrozenAt   time.Time          `json:"frozenAt"`
}

type ProcessingDocument struct {
	Raw  []MethodDocument `json:"raw"`
	Pre  []MethodDocument `json:"pre"`
	Post []MethodDocument `json:"post"`
}

type QCDocument struct {
	Raw     []TestDocument `json:"raw"`
	PreFill []TestDocument `json:"preFill"`
	Product []TestDocument `json:"product"`
}

type MethodDocument struct {
	MethodID string `json:"method_id"`
	Name     string `json:"name"`
	Cycles   int    `json:"cycles"`
	Order    int    `json:"order"`
}

type TestDocument struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Unit     string           `json:"unit,omitempty"`
	NormMin  *decimal.Decimal `json:"norm_min,omitempty"`
	NormMax  *decimal.Decimal `json:"norm_max,omitempty"`
	NormText string           `json:"norm_text,omitempty"`
	Method   string           `json:"method,omitempty"`
}

// FromDocument validates doc and builds the FrozenSpec it describes.
// Entries keep the order in which they appear in the document.
func FromDocument(doc Document) (FrozenSpec, error) {
	s := FrozenSpec{
		processing: make(map[Section][]ProcessingMethod, 3),
		qc:         make(map[QCGroup][]QCTest, 3),
		frozenAt:   doc.FrozenAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setProcessing(SectionRaw, doc.Processing.Raw),
		s.setProcessing(SectionPreFill, doc.Processing.Pre),
		s.setProcessing(SectionPostFill, doc.Processing.Post),
		s.setQC(QCGroupRaw, doc.QC.Raw),
		s.setQC(QCGroupPreFill, doc.QC.PreFill),
		s.setQC(QCGroupProduct, doc.QC.Product),
	); err != nil {
		return FrozenSpec{}, err
	}

	return s, nil
}

// Document returns the serializable form of s.
func (s FrozenSpec) Document() Document {
	return Document{
		Processing: ProcessingDocument{
			Raw:  methodDocs(s.processing[SectionRaw]),
			Pre:  methodDocs(s.processing[SectionPreFill]),
			Post: methodDocs(s.processing[SectionPostFill]),
		},
		QC: QCDocument{
			Raw:     testDocs(s.qc[QCGroupRaw]),
			PreFill: testDocs(s.qc[QCGroupPreFill]),
			Product: testDocs(s.qc[QCGroupProduct]),
		},
		FrozenAt: s.frozenAt,
	}
}

func (s *FrozenSpec) setProcessing(section Section, docs []MethodDocument) error {
	methods := make([]ProcessingMethod, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		param := fmt.Sprintf("processing.%s[%d]", section, i)
		id := strings.TrimSpace(d.MethodID)
		if id == "" {
			return errs.NewValueIsRequiredError(param + ".method_id")
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause(param+".method_id", fmt.Errorf("method %s is listed twice", id))
		}
		seen[id] = struct{}{}
		if d.Cycles < 1 {
			return errs.NewValueIsOutOfRangeError(param+".cycles", d.Cycles, 1, "unbounded")
		}
		methods = append(methods, ProcessingMethod{
			MethodID: id,
			Name:     d.Name,
			Cycles:   d.Cycles,
			Order:    d.Order,
		})
	}
	s.processing[section] = methods
	return nil
}

func (s *FrozenSpec) setQC(group QCGroup, docs []TestDocument) error {
	tests := make([]QCTest, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		param := fmt.Sprintf("qc.%s[%d]", group, i)
		code := strings.TrimSpace(d.Code)
		if code == "" {
			return errs.NewValueIsRequiredError(param + ".code")
		}
		if _, dup := seen[code]; dup {
			return errs.NewValueIsInvalidErrorWithCause(param+".code", fmt.Errorf("test %s is listed twice", code))
		}
		seen[code] = struct{}{}
		if d.NormMin != nil && d.NormMax != nil && d.NormMin.GreaterThan(*d.NormMax) {
			return errs.NewValueIsInvalidErrorWithCause(param+".norm",
				fmt.Errorf("norm_min %s is greater than norm_max %s", d.NormMin, d.NormMax))
		}
		tests = append(tests, QCTest{
			Code:     code,
			Name:     d.Name,
			Unit:     d.Unit,
			NormMin:  cloneDecimal(d.NormMin),
			NormMax:  cloneDecimal(d.NormMax),
			NormText: d.NormText,
			Method:   d.Method,
		})
	}
	s.qc[group] = tests
	return nil
}

func methodDocs(methods []ProcessingMethod) []MethodDocument {
	out := make([]MethodDocument, 0, len(methods))
	for _, m := range methods {
		out = append(out, MethodDocument(m))
	}
	return out
}

func testDocs(tests []QCTest) []TestDocument {
	out := make([]TestDocument, 0, len(tests))
	for _, t := range slices.Clone(tests) {
		t = t.clone()
		out = append(out, TestDocument(t))
	}
	return out
}
