package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
)

// AdvanceRawLotCommandHandler applies the raw lot's next transition. A
// missing prerequisite surfaces as errs.ErrPreconditionNotMet naming the
// unmet obligations.
type AdvanceRawLotCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewAdvanceRawLotCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AdvanceRawLotCommandHandler {
	return AdvanceRawLotCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AdvanceRawLotCommandHandler) Handle(ctx context.Context, cmd AdvanceLotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		lots := uow.RawLotRepository()
		lot, err := lots.Get(ctx, cmd.LotID())
		if err != nil {
			return err
		}
		if err = lot.Advance(h.clock.Now()); err != nil {
			return err
		}
		return lots.Update(ctx, lot)
	})
}
