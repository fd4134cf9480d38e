package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/spec"
)

// CreateRawLotCommandHandler freezes the product definition onto a new raw
// lot. An order-build lot is allocated to its source order line in the same
// transaction.
type CreateRawLotCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateRawLotCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateRawLotCommandHandler {
	return CreateRawLotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateRawLotCommandHandler) Handle(ctx context.Context, cmd CreateRawLotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		frozen, err := freezeProduct(ctx, uow, cmd.ProductCode(), h.clock)
		if err != nil {
			return err
		}

		now := h.clock.Now()
		lot, err := rawlot.NewRawLot(cmd.LotID(), rawlot.NewInput{
			ProductCode:       cmd.ProductCode(),
			Mode:              cmd.Mode(),
			FrozenSpec:        frozen,
			NominalVolume:     cmd.NominalVolume(),
			SourceOrderLineID: cmd.SourceOrderLineID(),
		}, now)
		if err != nil {
			return err
		}

		if err = uow.RawLotRepository().Add(ctx, lot); err != nil {
			return err
		}

		if lineID := cmd.SourceOrderLineID(); lineID != nil {
			orders := uow.OrderRepository()
			o, err := orders.GetByLine(ctx, *lineID)
			if err != nil {
				return err
			}
			if err = o.AssignLine(*lineID, lot.ID()); err != nil {
				return err
			}
			return orders.Update(ctx, o)
		}
		return nil
	})
}

// freezeProduct resolves a product definition against the catalog.
func freezeProduct(ctx context.Context, uow UoW, productCode string, clock kernel.Clock) (spec.FrozenSpec, error) {
	ref := uow.ReferenceRepository()
	catalog, err := ref.Catalog(ctx)
	if err != nil {
		return spec.FrozenSpec{}, err
	}
	def, err := ref.ProductDefinition(ctx, productCode)
	if err != nil {
		return spec.FrozenSpec{}, err
	}
	freezer, err := spec.NewFreezer(catalog, clock)
	if err != nil {
		return spec.FrozenSpec{}, err
	}
	return freezer.Freeze(def)
}
