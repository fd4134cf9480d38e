package commands

import (
	"errors"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrCreatePackagedLotCommandIsNotConstructed = errors.New(
	"CreatePackagedLotCommand must be created via NewCreatePackagedLotCommand constructor",
)

// CreatePackagedLotCommand plans a packaged lot filled from a raw lot,
// either for an order line or for stock when orderLineID is nil.
type CreatePackagedLotCommand struct { //nolint:recvcheck //using for validation
	packLotID    kernel.UUID
	rawLotID     kernel.UUID
	packFormatID string
	qtyPlanned   int
	orderLineID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreatePackagedLotCommand(
	packLotID, rawLotID kernel.UUID,
	packFormatID string,
	qtyPlanned int,
	orderLineID *kernel.UUID,
) (CreatePackagedLotCommand, error) {
	c := CreatePackagedLotCommand{
		packLotID:    packLotID,
		rawLotID:     rawLotID,
		packFormatID: strings.TrimSpace(packFormatID),
		qtyPlanned:   qtyPlanned,
		orderLineID:  orderLineID,
		guard:        guard.NewConstructorGuard(),
	}

	var errList []error
	errList = append(errList, packLotID.Validate())
	if err := rawLotID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("raw lot", err))
	}
	if c.packFormatID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("pack format"))
	}
	if qtyPlanned < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("planned quantity", qtyPlanned, 1, "unbounded"))
	}
	if orderLineID != nil {
		errList = append(errList, orderLineID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return CreatePackagedLotCommand{}, err
	}

	return c, nil
}

func (c CreatePackagedLotCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackagedLotCommandIsNotConstructed)
}

func (c CreatePackagedLotCommand) PackLotID() kernel.UUID    { return c.packLotID }
func (c CreatePackagedLotCommand) RawLotID() kernel.UUID     { return c.rawLotID }
func (c CreatePackagedLotCommand) PackFormatID() string      { return c.packFormatID }
func (c CreatePackagedLotCommand) QtyPlanned() int           { return c.qtyPlanned }
func (c CreatePackagedLotCommand) OrderLineID() *kernel.UUID { return c.orderLineID }
