package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
)

type RecordQcResultCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewRecordQcResultCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RecordQcResultCommandHandler {
	return RecordQcResultCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RecordQcResultCommandHandler) Handle(ctx context.Context, cmd RecordQcResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		return updateLot(ctx, uow, cmd.Kind(), cmd.LotID(), func(lot recorder) error {
			_, err := lot.RecordResult(cmd.RequestID(), cmd.ResultID(), cmd.Input(), h.clock.Now())
			return err
		})
	})
}
