package commands

import (
	"context"
	"fmt"

	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/pkg/errs"
)

// AllocateOrderLineCommandHandler checks that the raw lot makes the ordered
// product and is not rejected, then allocates it to the line.
type AllocateOrderLineCommandHandler struct {
	uowFactory UoWFactory
}

func NewAllocateOrderLineCommandHandler(uowFactory UoWFactory) AllocateOrderLineCommandHandler {
	return AllocateOrderLineCommandHandler{uowFactory: uowFactory}
}

func (h AllocateOrderLineCommandHandler) Handle(ctx context.Context, cmd AllocateOrderLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		orders := uow.OrderRepository()
		o, err := orders.GetByLine(ctx, cmd.LineID())
		if err != nil {
			return err
		}

		lot, err := uow.RawLotRepository().Get(ctx, cmd.RawLotID())
		if err != nil {
			return err
		}
		if lot.Status() == rawlot.Rejected {
			return errs.NewValueIsInvalidErrorWithCause("raw lot",
				fmt.Errorf("raw lot %s is %s", lot.ID(), lot.Status()))
		}
		if lot.ProductCode() != o.ProductCode() {
			return errs.NewValueIsInvalidErrorWithCause("raw lot",
				fmt.Errorf("raw lot %s makes %s, order %s needs %s", lot.ID(), lot.ProductCode(), o.ID(), o.ProductCode()))
		}

		if err = o.AssignLine(cmd.LineID(), lot.ID()); err != nil {
			return err
		}
		return orders.Update(ctx, o)
	})
}
