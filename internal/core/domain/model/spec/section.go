package spec

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

// Section selects one processing list of a frozen spec.
type Section int

const (
	SectionUnknown Section = iota
	SectionRaw
	SectionPreFill
	SectionPostFill
)

var sectionNames = map[Section]string{
	SectionRaw:      "raw",
	SectionPreFill:  "pre",
	SectionPostFill: "post",
}

func (s Section) String() string {
	if n, ok := sectionNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Section) Validate() error {
	if _, ok := sectionNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("section is invalid", fmt.Errorf("%d is not a valid section", s))
	}
	return nil
}

// ParseSection is the inverse of Section.String.
func ParseSection(s string) (Section, error) {
	for k, v := range sectionNames {
		if v == s {
			return k, nil
		}
	}
	return SectionUnknown, errs.NewValueIsInvalidErrorWithCause("section is invalid", fmt.Errorf("%q is not a valid section", s))
}

// QCGroup selects one QC test list of a frozen spec. It doubles as the type of
// a QC request: a raw request checks the raw group, a pre-fill request the
// pre-fill group and a post-fill request the product group.
type QCGroup int

const (
	QCGroupUnknown QCGroup = iota
	QCGroupRaw
	QCGroupPreFill
	QCGroupProduct
)

var qcGroupNames = map[QCGroup]string{
	QCGroupRaw:     "raw",
	QCGroupPreFill: "preFill",
	QCGroupProduct: "product",
}

func (g QCGroup) String() string {
	if n, ok := qcGroupNames[g]; ok {
		return n
	}
	return "unknown"
}

func (g QCGroup) Validate() error {
	if _, ok := qcGroupNames[g]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("qc group is invalid", fmt.Errorf("%d is not a valid qc group", g))
	}
	return nil
}

// ParseQCGroup is the inverse of QCGroup.String.
func ParseQCGroup(s string) (QCGroup, error) {
	for k, v := range qcGroupNames {
		if v == s {
			return k, nil
		}
	}
	return QCGroupUnknown, errs.NewValueIsInvalidErrorWithCause("qc group is invalid", fmt.Errorf("%q is not a valid qc group", s))
}
