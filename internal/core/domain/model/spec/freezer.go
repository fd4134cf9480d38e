package spec

import (
	"errors"
	"fmt"
	"sort"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

// Freezer snapshots a Definition against a Catalog.
type Freezer struct {
	catalog Catalog
	clock   kernel.Clock
}

func NewFreezer(catalog Catalog, clock kernel.Clock) (*Freezer, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	return &Freezer{catalog: catalog, clock: clock}, nil
}

// Freeze copies every requirement of def, with names and norms resolved from
// the catalog, into a new FrozenSpec. Entries of each section and group are
// stably ordered by their Order value. Unknown methods or tests yield
// ObjectNotFoundError.
func (f *Freezer) Freeze(def Definition) (FrozenSpec, error) {
	doc := Document{FrozenAt: f.clock.Now()}

	var errList []error
	for _, r := range sortedProcessing(def.Processing) {
		m, err := f.resolveMethod(r)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		switch r.Section {
		case SectionRaw:
			doc.Processing.Raw = append(doc.Processing.Raw, m)
		case SectionPreFill:
			doc.Processing.Pre = append(doc.Processing.Pre, m)
		case SectionPostFill:
			doc.Processing.Post = append(doc.Processing.Post, m)
		}
	}
	for _, r := range sortedQC(def.QC) {
		t, err := f.resolveTest(r)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		switch r.Group {
		case QCGroupRaw:
			doc.QC.Raw = append(doc.QC.Raw, t)
		case QCGroupPreFill:
			doc.QC.PreFill = append(doc.QC.PreFill, t)
		case QCGroupProduct:
			doc.QC.Product = append(doc.QC.Product, t)
		}
	}
	if err := errors.Join(errList...); err != nil {
		return FrozenSpec{}, err
	}

	return FromDocument(doc)
}

func (f *Freezer) resolveMethod(r ProcessingRequirement) (MethodDocument, error) {
	if err := r.Section.Validate(); err != nil {
		return MethodDocument{}, err
	}
	ref, ok := f.catalog.Method(r.MethodID)
	if !ok {
		return MethodDocument{}, errs.NewObjectNotFoundError("processing method", r.MethodID)
	}
	cycles := r.Cycles
	if cycles == 0 {
		cycles = 1
	}
	if cycles < 0 {
		return MethodDocument{}, errs.NewValueIsOutOfRangeError(
			fmt.Sprintf("cycles of %s", r.MethodID), r.Cycles, 1, "unbounded")
	}
	return MethodDocument{
		MethodID: ref.ID,
		Name:     ref.Name,
		Cycles:   cycles,
		Order:    r.Order,
	}, nil
}

func (f *Freezer) resolveTest(r QCRequirement) (TestDocument, error) {
	if err := r.Group.Validate(); err != nil {
		return TestDocument{}, err
	}
	ref, ok := f.catalog.Test(r.Code)
	if !ok {
		return TestDocument{}, errs.NewObjectNotFoundError("qc test", r.Code)
	}
	doc := TestDocument{
		Code:     ref.Code,
		Name:     ref.Name,
		Unit:     ref.Unit,
		NormMin:  cloneDecimal(ref.NormMin),
		NormMax:  cloneDecimal(ref.NormMax),
		NormText: ref.NormText,
		Method:   ref.Method,
	}
	if r.NormMin != nil || r.NormMax != nil {
		doc.NormMin = cloneDecimal(r.NormMin)
		doc.NormMax = cloneDecimal(r.NormMax)
	}
	if r.NormText != "" {
		doc.NormText = r.NormText
	}
	return doc, nil
}

func sortedProcessing(in []ProcessingRequirement) []ProcessingRequirement {
	out := make([]ProcessingRequirement, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedQC(in []QCRequirement) []QCRequirement {
	out := make([]QCRequirement, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
