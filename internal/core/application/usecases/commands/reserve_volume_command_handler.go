package commands

import (
	"context"
	"fmt"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/services"
	"exoprotrack/internal/pkg/errs"
)

// ReserveVolumeCommandHandler reserves raw-lot volume for an order line.
// Availability is recomputed from the lot's active reservations inside the
// transaction, and the raw lot is rewritten so that its version guards
// against a concurrent reservation on the same lot.
type ReserveVolumeCommandHandler struct {
	uowFactory UoWFactory
	ledger     services.ReservationLedger
	clock      kernel.Clock
}

func NewReserveVolumeCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ReserveVolumeCommandHandler {
	return ReserveVolumeCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewReservationLedger(),
		clock:      clock,
	}
}

func (h ReserveVolumeCommandHandler) Handle(ctx context.Context, cmd ReserveVolumeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetByLine(ctx, cmd.OrderLineID())
		if err != nil {
			return err
		}

		lots := uow.RawLotRepository()
		lot, err := lots.Get(ctx, cmd.RawLotID())
		if err != nil {
			return err
		}
		if lot.ProductCode() != o.ProductCode() {
			return errs.NewValueIsInvalidErrorWithCause("raw lot",
				fmt.Errorf("raw lot %s makes %s, order %s needs %s", lot.ID(), lot.ProductCode(), o.ID(), o.ProductCode()))
		}

		reservations := uow.ReservationRepository()
		active, err := reservations.FindActiveByRawLot(ctx, lot.ID())
		if err != nil {
			return err
		}

		r, err := h.ledger.Reserve(cmd.ReservationID(), lot, cmd.OrderLineID(), cmd.Volume(), active, h.clock.Now())
		if err != nil {
			return err
		}

		if err = reservations.Add(ctx, r); err != nil {
			return err
		}
		return lots.Update(ctx, lot)
	})
}
