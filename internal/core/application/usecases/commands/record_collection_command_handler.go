package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/rawlot"
)

// RecordCollectionCommandHandler resolves the culture's cell type and
// records the collection on the raw lot. A collection that would overflow
// the container or mix media or cell types is rejected without changing
// the lot.
type RecordCollectionCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecordCollectionCommandHandler(uowFactory UoWFactory) RecordCollectionCommandHandler {
	return RecordCollectionCommandHandler{uowFactory: uowFactory}
}

func (h RecordCollectionCommandHandler) Handle(ctx context.Context, cmd RecordCollectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		cellType, err := uow.ReferenceRepository().CultureCellType(ctx, cmd.CultureID())
		if err != nil {
			return err
		}

		lots := uow.RawLotRepository()
		lot, err := lots.Get(ctx, cmd.LotID())
		if err != nil {
			return err
		}

		if _, err = lot.RecordCollection(cmd.EventID(), rawlot.CollectionInput{
			Volume:      cmd.Volume(),
			CultureID:   cmd.CultureID(),
			CellType:    cellType,
			MediaSpecID: cmd.MediaSpecID(),
			CollectedAt: cmd.CollectedAt(),
			Operator:    cmd.Operator(),
		}); err != nil {
			return err
		}

		return lots.Update(ctx, lot)
	})
}
