package order

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

// Status represents the lifecycle state of an order line.
//
// State transitions:
//
//	Created ──┬──> Assigned ──> InProduction ──┬──> Completed
//	          │        │                       └──> PartiallyFulfilled
//	          └────────┘
//	     (reallocation allowed)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the initial status. The line waits for a raw lot.
	Created

	// Assigned indicates a raw lot has been allocated to the line.
	Assigned

	// InProduction indicates a packaged lot is being produced for the line.
	InProduction

	// Completed is final: the line is closed with whatever quantity was fulfilled.
	Completed

	// PartiallyFulfilled is final: the unmet remainder moved to a child order.
	PartiallyFulfilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Created:            "Created",
		Assigned:           "Assigned",
		InProduction:       "InProduction",
		Completed:          "Completed",
		PartiallyFulfilled: "PartiallyFulfilled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:            "Created",
		Assigned:           "Assigned",
		InProduction:       "InProduction",
		Completed:          "Completed",
		PartiallyFulfilled: "PartiallyFulfilled",
	}
}

// Validate checks if the Status value is valid. Unknown (0) and any other
// values outside the declared set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus maps a stored name back to its Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range getValidStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == PartiallyFulfilled
}

// ValidateAssign checks if the status allows allocation without performing
// the transition. Created lines can be allocated, Assigned lines reallocated.
func (s Status) ValidateAssign() error {
	if s != Created && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveRawLot validates the consistency between line status and
// raw lot allocation.
//
// Business Rules:
//   - Created lines must not have a raw lot allocated
//   - Every later status requires an allocated raw lot
func (s Status) ValidateCanHaveRawLot(allocated bool) error {
	if allocated && s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a raw lot", s.String()),
		)
	}

	if !allocated && s != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no raw lot", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Created -> Assigned (initial allocation)
//   - Assigned -> Assigned (reallocation to a different raw lot)
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// StartProduction transitions Assigned -> InProduction.
func (s Status) StartProduction() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start production", s.String()),
		)
	}

	return InProduction, nil
}

// Complete transitions InProduction -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InProduction {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// PartiallyFulfill transitions InProduction -> PartiallyFulfilled.
func (s Status) PartiallyFulfill() (Status, error) {
	if s != InProduction {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to partially fulfill", s.String()),
		)
	}

	return PartiallyFulfilled, nil
}
