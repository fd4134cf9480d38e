package commands

import (
	"context"
	"fmt"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
)

// CreatePackagedLotCommandHandler plans a packaged lot. A lot for an order
// line inherits the order's frozen spec and moves the line into production;
// the line must already be allocated to the same raw lot and pack format.
// A stock lot freezes the raw lot's product definition.
type CreatePackagedLotCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreatePackagedLotCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreatePackagedLotCommandHandler {
	return CreatePackagedLotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreatePackagedLotCommandHandler) Handle(ctx context.Context, cmd CreatePackagedLotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		raw, err := uow.RawLotRepository().Get(ctx, cmd.RawLotID())
		if err != nil {
			return err
		}
		if raw.Status() == rawlot.Rejected {
			return errs.NewValueIsInvalidErrorWithCause("raw lot",
				fmt.Errorf("raw lot %s is %s", raw.ID(), raw.Status()))
		}

		format, err := uow.ReferenceRepository().PackFormat(ctx, cmd.PackFormatID())
		if err != nil {
			return err
		}

		in := packlot.NewInput{
			RawLotID:     raw.ID(),
			PackFormatID: format.ID,
			FillVolume:   format.FillVolume,
			QtyPlanned:   cmd.QtyPlanned(),
		}

		if lineID := cmd.OrderLineID(); lineID != nil {
			orders := uow.OrderRepository()
			o, err := orders.GetByLine(ctx, *lineID)
			if err != nil {
				return err
			}
			line, err := o.Line(*lineID)
			if err != nil {
				return err
			}
			if line.RawLotID() == nil || !line.RawLotID().IsEqual(raw.ID()) {
				return errs.NewValueIsInvalidErrorWithCause("raw lot",
					fmt.Errorf("order line %s is not allocated to raw lot %s", line.ID(), raw.ID()))
			}
			if line.PackFormatID() != format.ID {
				return errs.NewValueIsInvalidErrorWithCause("pack format",
					fmt.Errorf("order line %s asks for %s, got %s", line.ID(), line.PackFormatID(), format.ID))
			}
			if cmd.QtyPlanned() != line.QtyUnits() {
				return errs.NewValueIsInvalidErrorWithCause("qty planned",
					fmt.Errorf("order line %s needs %d units, got %d", line.ID(), line.QtyUnits(), cmd.QtyPlanned()))
			}
			if err = o.StartLineProduction(*lineID); err != nil {
				return err
			}
			if err = orders.Update(ctx, o); err != nil {
				return err
			}

			orderID := o.ID()
			in.FrozenSpec = o.FrozenSpec()
			in.OrderID = &orderID
			in.OrderLineID = lineID
		} else {
			var frozen spec.FrozenSpec
			if frozen, err = freezeProduct(ctx, uow, raw.ProductCode(), h.clock); err != nil {
				return err
			}
			in.FrozenSpec = frozen
		}

		lot, err := packlot.NewPackagedLot(cmd.PackLotID(), in, h.clock.Now())
		if err != nil {
			return err
		}
		return uow.PackagedLotRepository().Add(ctx, lot)
	})
}
