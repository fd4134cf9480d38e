package qc

import (
	"fmt"

	"exoprotrack/internal/pkg/errs"
)

// PassFail is the verdict of one result.
type PassFail int

const (
	PassFailUnknown PassFail = iota
	Pass
	Fail
	Inconclusive
)

var passFailNames = map[PassFail]string{
	Pass:         "Pass",
	Fail:         "Fail",
	Inconclusive: "Inconclusive",
}

func (p PassFail) String() string {
	if n, ok := passFailNames[p]; ok {
		return n
	}
	return "Unknown"
}

func (p PassFail) Validate() error {
	if _, ok := passFailNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("pass/fail is invalid", fmt.Errorf("%d is not a valid verdict", p))
	}
	return nil
}

// ParsePassFail accepts the String form. The empty string maps to
// PassFailUnknown, meaning "derive from the norm".
func ParsePassFail(s string) (PassFail, error) {
	if s == "" {
		return PassFailUnknown, nil
	}
	for k, v := range passFailNames {
		if v == s {
			return k, nil
		}
	}
	return PassFailUnknown, errs.NewValueIsInvalidErrorWithCause("pass/fail is invalid", fmt.Errorf("%q is not a valid verdict", s))
}
