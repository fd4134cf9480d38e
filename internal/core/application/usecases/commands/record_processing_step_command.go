package commands

import (
	"errors"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var (
	ErrRecordProcessingStepCommandIsNotConstructed = errors.New(
		"RecordProcessingStepCommand must be created via NewRecordProcessingStepCommand constructor",
	)
	ErrCompleteProcessingStepCommandIsNotConstructed = errors.New(
		"CompleteProcessingStepCommand must be created via NewCompleteProcessingStepCommand constructor",
	)
)

// RecordProcessingStepCommand records a processing step on a raw or
// packaged lot. The step's fields are validated by the lot against its
// frozen spec.
type RecordProcessingStepCommand struct {
	kind   LotKind
	lotID  kernel.UUID
	stepID kernel.UUID
	input  step.Input

	guard guard.ConstructorGuard
}

func NewRecordProcessingStepCommand(kind LotKind, lotID, stepID kernel.UUID, in step.Input) (RecordProcessingStepCommand, error) {
	if _, err := ParseLotKind(string(kind)); err != nil {
		return RecordProcessingStepCommand{}, err
	}
	if err := errors.Join(lotID.Validate(), stepID.Validate()); err != nil {
		return RecordProcessingStepCommand{}, err
	}
	return RecordProcessingStepCommand{
		kind:   kind,
		lotID:  lotID,
		stepID: stepID,
		input:  in,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RecordProcessingStepCommand) Validate() error {
	return c.guard.Validate(ErrRecordProcessingStepCommandIsNotConstructed)
}

func (c RecordProcessingStepCommand) Kind() LotKind       { return c.kind }
func (c RecordProcessingStepCommand) LotID() kernel.UUID  { return c.lotID }
func (c RecordProcessingStepCommand) StepID() kernel.UUID { return c.stepID }
func (c RecordProcessingStepCommand) Input() step.Input   { return c.input }

// CompleteProcessingStepCommand sets the end time and output quantity of a
// running step.
type CompleteProcessingStepCommand struct {
	kind    LotKind
	lotID   kernel.UUID
	stepID  kernel.UUID
	endedAt time.Time
	output  *kernel.Volume

	guard guard.ConstructorGuard
}

func NewCompleteProcessingStepCommand(
	kind LotKind, lotID, stepID kernel.UUID, endedAt time.Time, output *kernel.Volume,
) (CompleteProcessingStepCommand, error) {
	if _, err := ParseLotKind(string(kind)); err != nil {
		return CompleteProcessingStepCommand{}, err
	}
	if err := errors.Join(lotID.Validate(), stepID.Validate()); err != nil {
		return CompleteProcessingStepCommand{}, err
	}
	if endedAt.IsZero() {
		return CompleteProcessingStepCommand{}, errs.NewValueIsRequiredError("ended at")
	}
	return CompleteProcessingStepCommand{
		kind:    kind,
		lotID:   lotID,
		stepID:  stepID,
		endedAt: endedAt,
		output:  output,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteProcessingStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteProcessingStepCommandIsNotConstructed)
}

func (c CompleteProcessingStepCommand) Kind() LotKind          { return c.kind }
func (c CompleteProcessingStepCommand) LotID() kernel.UUID     { return c.lotID }
func (c CompleteProcessingStepCommand) StepID() kernel.UUID    { return c.stepID }
func (c CompleteProcessingStepCommand) EndedAt() time.Time     { return c.endedAt }
func (c CompleteProcessingStepCommand) Output() *kernel.Volume { return c.output }
