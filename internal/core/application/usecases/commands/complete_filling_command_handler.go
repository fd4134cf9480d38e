package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/services"
)

// CompleteFillingCommandHandler moves a packaged lot from Filling to Filled
// and settles the raw material and the order line in one transaction: the
// raw lot is debited produced × fill volume, the line's reservations on it
// are consumed and a short fill is accepted or split into a child order.
// Volume reserved for other lines is never drawn.
type CompleteFillingCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.PartialFulfillmentReconciler
	clock      kernel.Clock
}

func NewCompleteFillingCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CompleteFillingCommandHandler {
	return CompleteFillingCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewPartialFulfillmentReconciler(),
		clock:      clock,
	}
}

func (h CompleteFillingCommandHandler) Handle(ctx context.Context, cmd CompleteFillingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		packLots := uow.PackagedLotRepository()
		rawLots := uow.RawLotRepository()
		reservations := uow.ReservationRepository()
		orders := uow.OrderRepository()

		pl, err := packLots.Get(ctx, cmd.PackLotID())
		if err != nil {
			return err
		}
		raw, err := rawLots.Get(ctx, pl.RawLotID())
		if err != nil {
			return err
		}

		now := h.clock.Now()
		if err = pl.CompleteFilling(cmd.QtyProduced(), now); err != nil {
			return err
		}

		in := services.ReconcileInput{
			PackagedLot:  pl,
			RawLot:       raw,
			Choice:       cmd.Reconciliation(),
			ChildOrderID: cmd.ChildOrderID(),
			ChildLineID:  cmd.ChildLineID(),
		}
		if in.Reservations, err = reservations.FindActiveByRawLot(ctx, raw.ID()); err != nil {
			return err
		}
		var o *order.Order
		if pl.OrderID() != nil {
			if o, err = orders.Get(ctx, *pl.OrderID()); err != nil {
				return err
			}
			in.Order = o
		}

		res, err := h.reconciler.Reconcile(in, now)
		if err != nil {
			return err
		}

		if err = packLots.Update(ctx, pl); err != nil {
			return err
		}
		if err = rawLots.Update(ctx, raw); err != nil {
			return err
		}
		for _, r := range res.Consumed {
			if err = reservations.Update(ctx, r); err != nil {
				return err
			}
		}
		if o != nil {
			if err = orders.Update(ctx, o); err != nil {
				return err
			}
		}
		if res.ChildOrder != nil {
			return orders.Add(ctx, res.ChildOrder)
		}
		return nil
	})
}
