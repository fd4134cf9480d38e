package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
)

// RecordShipmentCommandHandler dispatches units of a released packaged lot.
type RecordShipmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewRecordShipmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RecordShipmentCommandHandler {
	return RecordShipmentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RecordShipmentCommandHandler) Handle(ctx context.Context, cmd RecordShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		lots := uow.PackagedLotRepository()
		lot, err := lots.Get(ctx, cmd.PackLotID())
		if err != nil {
			return err
		}
		if _, err = lot.RecordShipment(cmd.ShipmentID(), cmd.Qty(), cmd.Reference(), h.clock.Now()); err != nil {
			return err
		}
		return lots.Update(ctx, lot)
	})
}
