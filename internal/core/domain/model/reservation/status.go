package reservation

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

// Status of a reservation. Consumed and Cancelled are terminal.
type Status int

const (
	Unknown Status = iota
	Active
	Consumed
	Cancelled
)

var statusNames = map[Status]string{
	Active:    "Active",
	Consumed:  "Consumed",
	Cancelled: "Cancelled",
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

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}
