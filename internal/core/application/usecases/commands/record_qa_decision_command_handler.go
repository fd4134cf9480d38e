package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
)

type RecordQaDecisionCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewRecordQaDecisionCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RecordQaDecisionCommandHandler {
	return RecordQaDecisionCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RecordQaDecisionCommandHandler) Handle(ctx context.Context, cmd RecordQaDecisionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		return updateLot(ctx, uow, cmd.Kind(), cmd.LotID(), func(lot recorder) error {
			_, err := lot.RecordDecision(cmd.DecisionID(), cmd.Input(), h.clock.Now())
			return err
		})
	})
}
