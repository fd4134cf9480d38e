package rawlot

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

// Status is the stage of a raw lot.
type Status int

const (
	Unknown Status = iota
	Open
	ClosedCollected
	InProcessing
	QCPending
	QCCompleted
	Approved
	Rejected
	OnHold
)

var statusNames = map[Status]string{
	Open:            "Open",
	ClosedCollected: "Closed_Collected",
	InProcessing:    "In_Processing",
	QCPending:       "QC_Pending",
	QCCompleted:     "QC_Completed",
	Approved:        "Approved",
	Rejected:        "Rejected",
	OnHold:          "OnHold",
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
	return s == Approved || s == Rejected
}

// ParseStatus is the inverse of String.
func ParseStatus(str string) (Status, error) {
	for k, v := range statusNames {
		if v == str {
			return k, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}

// Mode tells lots built for stock from lots built against an order line.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeStockBuild
	ModeOrderBuild
)

func (m Mode) String() string {
	switch m {
	case ModeStockBuild:
		return "StockBuild"
	case ModeOrderBuild:
		return "OrderBuild"
	default:
		return "Unknown"
	}
}

func (m Mode) Validate() error {
	if m != ModeStockBuild && m != ModeOrderBuild {
		return errs.NewValueIsInvalidErrorWithCause("mode is invalid", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "StockBuild":
		return ModeStockBuild, nil
	case "OrderBuild":
		return ModeOrderBuild, nil
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("mode is invalid", fmt.Errorf("%q is not a valid mode", s))
}
