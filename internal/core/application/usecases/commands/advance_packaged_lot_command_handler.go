package commands

import (
	"context"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/services"
)

// AdvancePackagedLotCommandHandler applies the packaged lot's next
// transition. Entering Filling is admitted only when the source raw lot is
// approved, unexpired and can cover the planned fill with the line's
// reservations plus free volume.
type AdvancePackagedLotCommandHandler struct {
	uowFactory UoWFactory
	ledger     services.ReservationLedger
	clock      kernel.Clock
}

func NewAdvancePackagedLotCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AdvancePackagedLotCommandHandler {
	return AdvancePackagedLotCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewReservationLedger(),
		clock:      clock,
	}
}

func (h AdvancePackagedLotCommandHandler) Handle(ctx context.Context, cmd AdvanceLotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		lots := uow.PackagedLotRepository()
		lot, err := lots.Get(ctx, cmd.LotID())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if next, nextErr := lot.NextStatus(); nextErr == nil && next == packlot.Filling {
			if err = h.admitFilling(ctx, uow, lot, now); err != nil {
				return err
			}
		}

		if err = lot.Advance(now); err != nil {
			return err
		}
		return lots.Update(ctx, lot)
	})
}

func (h AdvancePackagedLotCommandHandler) admitFilling(ctx context.Context, uow UoW, lot *packlot.PackagedLot, now time.Time) error {
	raw, err := uow.RawLotRepository().Get(ctx, lot.RawLotID())
	if err != nil {
		return err
	}
	reservations, err := uow.ReservationRepository().FindActiveByRawLot(ctx, raw.ID())
	if err != nil {
		return err
	}
	return h.ledger.AdmitFilling(raw, lot.OrderLineID(), lot.RequiredVolume(), reservations, now)
}
