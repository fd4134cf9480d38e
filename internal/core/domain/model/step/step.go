// Package step records executions of processing methods against a lot.
// One ProcessingStep is one (method, occurrence) execution; it counts toward
// the lot's obligations once it has an end timestamp.
package step

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/obligation"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
)

var ErrStepIsNotConstructed = errors.New("ProcessingStep must be created via NewProcessingStep")

// Input carries the operator-entered fields of a step.
type Input struct {
	MethodID   string
	Occurrence int
	Section    spec.Section
	InputQty   *kernel.Volume
	OutputQty  *kernel.Volume
	StartedAt  time.Time
	EndedAt    *time.Time
	Operator   string
	Notes      string
}

type ProcessingStep struct {
	id            kernel.UUID
	methodID      string
	occurrence    int
	section       spec.Section
	inputQty      *kernel.Volume
	outputQty     *kernel.Volume
	startedAt     time.Time
	endedAt       *time.Time
	operator      string
	notes         string
	isConstructed bool
}

func NewProcessingStep(id kernel.UUID, in Input) (*ProcessingStep, error) {
	s := &ProcessingStep{
		inputQty:      in.InputQty,
		outputQty:     in.OutputQty,
		notes:         in.Notes,
		isConstructed: true,
	}
	if err := errors.Join(
		s.setID(id),
		s.setMethod(in.MethodID, in.Occurrence),
		in.Section.Validate(),
		s.setOperator(in.Operator),
		s.setTimes(in.StartedAt, in.EndedAt),
	); err != nil {
		return nil, err
	}
	s.section = in.Section
	return s, nil
}

// RestoreProcessingStep rebuilds a step loaded from storage.
func RestoreProcessingStep(id kernel.UUID, in Input) (*ProcessingStep, error) {
	return NewProcessingStep(id, in)
}

func (s *ProcessingStep) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStepIsNotConstructed
	}
	return nil
}

func (s *ProcessingStep) ID() kernel.UUID           { return s.id }
func (s *ProcessingStep) MethodID() string          { return s.methodID }
func (s *ProcessingStep) Occurrence() int           { return s.occurrence }
func (s *ProcessingStep) Section() spec.Section     { return s.section }
func (s *ProcessingStep) InputQty() *kernel.Volume  { return s.inputQty }
func (s *ProcessingStep) OutputQty() *kernel.Volume { return s.outputQty }
func (s *ProcessingStep) StartedAt() time.Time      { return s.startedAt }
func (s *ProcessingStep) EndedAt() *time.Time       { return s.endedAt }
func (s *ProcessingStep) Operator() string          { return s.operator }
func (s *ProcessingStep) Notes() string             { return s.notes }

func (s *ProcessingStep) Key() obligation.StepKey {
	return obligation.StepKey{MethodID: s.methodID, Occurrence: s.occurrence}
}

// IsCompleted reports whether the step has ended.
func (s *ProcessingStep) IsCompleted() bool {
	return s.endedAt != nil
}

// Complete stamps the end of a running step.
func (s *ProcessingStep) Complete(endedAt time.Time, output *kernel.Volume) error {
	if s.IsCompleted() {
		return errs.NewValueIsInvalidErrorWithCause("step is invalid",
			fmt.Errorf("step %s already ended at %s", s.Key(), s.endedAt.Format(time.RFC3339)))
	}
	if err := s.setTimes(s.startedAt, &endedAt); err != nil {
		return err
	}
	if output != nil {
		s.outputQty = output
	}
	return nil
}

func (s *ProcessingStep) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *ProcessingStep) setMethod(methodID string, occurrence int) error {
	methodID = strings.TrimSpace(methodID)
	var errList []error
	if methodID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("method id"))
	}
	if occurrence < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("occurrence", occurrence, 1, "cycles"))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	s.methodID = methodID
	s.occurrence = occurrence
	return nil
}

func (s *ProcessingStep) setOperator(operator string) error {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return errs.NewValueIsRequiredError("operator")
	}
	s.operator = operator
	return nil
}

func (s *ProcessingStep) setTimes(startedAt time.Time, endedAt *time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("started at")
	}
	if endedAt != nil && endedAt.Before(startedAt) {
		return errs.NewValueIsInvalidErrorWithCause("ended at",
			fmt.Errorf("%s is before start %s", endedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339)))
	}
	s.startedAt = startedAt
	if endedAt != nil {
		e := *endedAt
		s.endedAt = &e
	}
	return nil
}

// CompletedKeys indexes the completed steps of one section for the resolver.
func CompletedKeys(steps []*ProcessingStep, section spec.Section) map[obligation.StepKey]bool {
	keys := make(map[obligation.StepKey]bool, len(steps))
	for _, s := range steps {
		if s.section == section && s.IsCompleted() {
			keys[s.Key()] = true
		}
	}
	return keys
}

// CheckAgainstSpec validates a step about to be recorded. When the frozen spec
// lists methods for the step's section, the method must be one of them and the
// occurrence must be within its cycles. A (method, occurrence) pair is
// recorded once per section.
func CheckAgainstSpec(frozen spec.FrozenSpec, recorded []*ProcessingStep, in Input) error {
	methodID := strings.TrimSpace(in.MethodID)
	if frozen.HasProcessing(in.Section) {
		m, ok := frozen.Method(in.Section, methodID)
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("method id",
				fmt.Errorf("%s is not a %s method of the frozen spec", methodID, in.Section))
		}
		if in.Occurrence > m.Cycles {
			return errs.NewValueIsOutOfRangeError("occurrence", in.Occurrence, 1, m.Cycles)
		}
	}
	for _, s := range recorded {
		if s.section == in.Section && s.methodID == methodID && s.occurrence == in.Occurrence {
			return errs.NewValueIsInvalidErrorWithCause("occurrence",
				fmt.Errorf("%s occurrence %d is already recorded", methodID, in.Occurrence))
		}
	}
	return nil
}
