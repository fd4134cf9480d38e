package commands

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/pkg/guard"
)

var ErrRecordQaDecisionCommandIsNotConstructed = errors.New(
	"RecordQaDecisionCommand must be created via NewRecordQaDecisionCommand constructor",
)

// RecordQaDecisionCommand records a QA decision at the lot's current gate.
// Approving over non-passing results requires a reason.
type RecordQaDecisionCommand struct {
	kind       LotKind
	lotID      kernel.UUID
	decisionID kernel.UUID
	input      qc.DecisionInput

	guard guard.ConstructorGuard
}

func NewRecordQaDecisionCommand(kind LotKind, lotID, decisionID kernel.UUID, in qc.DecisionInput) (RecordQaDecisionCommand, error) {
	if _, err := ParseLotKind(string(kind)); err != nil {
		return RecordQaDecisionCommand{}, err
	}
	if err := errors.Join(lotID.Validate(), decisionID.Validate(), in.Verdict.Validate()); err != nil {
		return RecordQaDecisionCommand{}, err
	}
	return RecordQaDecisionCommand{
		kind:       kind,
		lotID:      lotID,
		decisionID: decisionID,
		input:      in,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordQaDecisionCommand) Validate() error {
	return c.guard.Validate(ErrRecordQaDecisionCommandIsNotConstructed)
}

func (c RecordQaDecisionCommand) Kind() LotKind           { return c.kind }
func (c RecordQaDecisionCommand) LotID() kernel.UUID      { return c.lotID }
func (c RecordQaDecisionCommand) DecisionID() kernel.UUID { return c.decisionID }
func (c RecordQaDecisionCommand) Input() qc.DecisionInput { return c.input }
