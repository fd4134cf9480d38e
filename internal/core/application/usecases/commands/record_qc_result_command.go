package commands

import (
	"errors"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrRecordQcResultCommandIsNotConstructed = errors.New(
	"RecordQcResultCommand must be created via NewRecordQcResultCommand constructor",
)

// RecordQcResultCommand records a test result on the open QC request of a lot.
type RecordQcResultCommand struct {
	kind      LotKind
	lotID     kernel.UUID
	requestID kernel.UUID
	resultID  kernel.UUID
	input     qc.ResultInput

	guard guard.ConstructorGuard
}

func NewRecordQcResultCommand(kind LotKind, lotID, requestID, resultID kernel.UUID, in qc.ResultInput) (RecordQcResultCommand, error) {
	if _, err := ParseLotKind(string(kind)); err != nil {
		return RecordQcResultCommand{}, err
	}
	if err := errors.Join(lotID.Validate(), requestID.Validate(), resultID.Validate()); err != nil {
		return RecordQcResultCommand{}, err
	}
	if strings.TrimSpace(in.Code) == "" {
		return RecordQcResultCommand{}, errs.NewValueIsRequiredError("test code")
	}
	return RecordQcResultCommand{
		kind:      kind,
		lotID:     lotID,
		requestID: requestID,
		resultID:  resultID,
		input:     in,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordQcResultCommand) Validate() error {
	return c.guard.Validate(ErrRecordQcResultCommandIsNotConstructed)
}

func (c RecordQcResultCommand) Kind() LotKind          { return c.kind }
func (c RecordQcResultCommand) LotID() kernel.UUID     { return c.lotID }
func (c RecordQcResultCommand) RequestID() kernel.UUID { return c.requestID }
func (c RecordQcResultCommand) ResultID() kernel.UUID  { return c.resultID }
func (c RecordQcResultCommand) Input() qc.ResultInput  { return c.input }
