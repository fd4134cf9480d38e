package commands

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrRecordShipmentCommandIsNotConstructed = errors.New(
	"RecordShipmentCommand must be created via NewRecordShipmentCommand constructor",
)

type RecordShipmentCommand struct {
	packLotID  kernel.UUID
	shipmentID kernel.UUID
	qty        int
	reference  string

	guard guard.ConstructorGuard
}

func NewRecordShipmentCommand(packLotID, shipmentID kernel.UUID, qty int, reference string) (RecordShipmentCommand, error) {
	if err := errors.Join(packLotID.Validate(), shipmentID.Validate()); err != nil {
		return RecordShipmentCommand{}, err
	}
	if qty < 1 {
		return RecordShipmentCommand{}, errs.NewValueIsOutOfRangeError("shipment quantity", qty, 1, "unbounded")
	}
	return RecordShipmentCommand{
		packLotID:  packLotID,
		shipmentID: shipmentID,
		qty:        qty,
		reference:  reference,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRecordShipmentCommandIsNotConstructed)
}

func (c RecordShipmentCommand) PackLotID() kernel.UUID  { return c.packLotID }
func (c RecordShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c RecordShipmentCommand) Qty() int                { return c.qty }
func (c RecordShipmentCommand) Reference() string       { return c.reference }
