package commands

import (
	"context"
)

type RecordProcessingStepCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecordProcessingStepCommandHandler(uowFactory UoWFactory) RecordProcessingStepCommandHandler {
	return RecordProcessingStepCommandHandler{uowFactory: uowFactory}
}

func (h RecordProcessingStepCommandHandler) Handle(ctx context.Context, cmd RecordProcessingStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		return updateLot(ctx, uow, cmd.Kind(), cmd.LotID(), func(lot recorder) error {
			_, err := lot.RecordStep(cmd.StepID(), cmd.Input())
			return err
		})
	})
}

type CompleteProcessingStepCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteProcessingStepCommandHandler(uowFactory UoWFactory) CompleteProcessingStepCommandHandler {
	return CompleteProcessingStepCommandHandler{uowFactory: uowFactory}
}

func (h CompleteProcessingStepCommandHandler) Handle(ctx context.Context, cmd CompleteProcessingStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		return updateLot(ctx, uow, cmd.Kind(), cmd.LotID(), func(lot recorder) error {
			return lot.CompleteStep(cmd.StepID(), cmd.EndedAt(), cmd.Output())
		})
	})
}
