package qc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrResultIsNotConstructed = errors.New("Result must be created via Request.RecordResult or RestoreResult")

// ResultInput is what an analyst submits for one test.
type ResultInput struct {
	Code       string
	Value      *decimal.Decimal
	Text       string
	Verdict    PassFail
	RecordedBy string
}

type Result struct {
	id            kernel.UUID
	requestID     kernel.UUID
	code          string
	value         *decimal.Decimal
	text          string
	verdict       PassFail
	recordedAt    time.Time
	recordedBy    string
	isConstructed bool
}

func newResult(id, requestID kernel.UUID, test spec.QCTest, in ResultInput, recordedAt time.Time) (*Result, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Code) != test.Code {
		return nil, errs.NewValueIsInvalidErrorWithCause("test code",
			fmt.Errorf("result for %q recorded against test %q", in.Code, test.Code))
	}
	verdict, err := deriveVerdict(test, in)
	if err != nil {
		return nil, err
	}
	return &Result{
		id:            id,
		requestID:     requestID,
		code:          test.Code,
		value:         in.Value,
		text:          in.Text,
		verdict:       verdict,
		recordedAt:    recordedAt,
		recordedBy:    in.RecordedBy,
		isConstructed: true,
	}, nil
}

// RestoreResult rebuilds a result loaded from storage.
func RestoreResult(
	id, requestID kernel.UUID, code string, value *decimal.Decimal, text string,
	verdict PassFail, recordedAt time.Time, recordedBy string,
) (*Result, error) {
	if err := errors.Join(id.Validate(), requestID.Validate(), verdict.Validate()); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("test code")
	}
	return &Result{
		id:            id,
		requestID:     requestID,
		code:          code,
		value:         value,
		text:          text,
		verdict:       verdict,
		recordedAt:    recordedAt,
		recordedBy:    recordedBy,
		isConstructed: true,
	}, nil
}

// deriveVerdict prefers the analyst's explicit verdict and otherwise compares
// a numeric value with the frozen norm.
func deriveVerdict(test spec.QCTest, in ResultInput) (PassFail, error) {
	if in.Verdict != PassFailUnknown {
		if err := in.Verdict.Validate(); err != nil {
			return PassFailUnknown, err
		}
		return in.Verdict, nil
	}
	if in.Value != nil {
		if within, ok := test.WithinNorm(*in.Value); ok {
			if within {
				return Pass, nil
			}
			return Fail, nil
		}
	}
	return PassFailUnknown, errs.NewValueIsRequiredErrorWithCause("pass/fail",
		fmt.Errorf("test %s has no numeric norm to evaluate against", test.Code))
}

func (r *Result) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrResultIsNotConstructed
	}
	return nil
}

func (r *Result) ID() kernel.UUID         { return r.id }
func (r *Result) RequestID() kernel.UUID  { return r.requestID }
func (r *Result) Code() string            { return r.code }
func (r *Result) Value() *decimal.Decimal { return r.value }
func (r *Result) Text() string            { return r.text }
func (r *Result) Verdict() PassFail       { return r.verdict }
func (r *Result) RecordedAt() time.Time   { return r.recordedAt }
func (r *Result) RecordedBy() string      { return r.recordedBy }
