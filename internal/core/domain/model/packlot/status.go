package packlot

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Planned
	Processing
	PreFillQCPending
	PreFillQCCompleted
	PreFillQAPending
	Filling
	Filled
	PostProcessing
	PostFillQCPending
	PostFillQCCompleted
	PostFillQAPending
	Released
	PartiallyShipped
	Shipped
	Rejected
	OnHold
)

var statusNames = map[Status]string{
	Planned:             "Planned",
	Processing:          "Processing",
	PreFillQCPending:    "PreFill_QC_Pending",
	PreFillQCCompleted:  "PreFill_QC_Completed",
	PreFillQAPending:    "PreFill_QA_Pending",
	Filling:             "Filling",
	Filled:              "Filled",
	PostProcessing:      "PostProcessing",
	PostFillQCPending:   "PostFill_QC_Pending",
	PostFillQCCompleted: "PostFill_QC_Completed",
	PostFillQAPending:   "PostFill_QA_Pending",
	Released:            "Released",
	PartiallyShipped:    "PartiallyShipped",
	Shipped:             "Shipped",
	Rejected:            "Rejected",
	OnHold:              "OnHold",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports statuses no operation may leave.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Rejected
}

func ParseStatus(str string) (Status, error) {
	for k, v := range statusNames {
		if v == str {
			return k, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}
