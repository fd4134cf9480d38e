package commands

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/guard"
)

var ErrAllocateOrderLineCommandIsNotConstructed = errors.New(
	"AllocateOrderLineCommand must be created via NewAllocateOrderLineCommand constructor",
)

// AllocateOrderLineCommand assigns a raw lot to an order line. Reallocating
// an Assigned line to another lot is allowed.
type AllocateOrderLineCommand struct {
	lineID   kernel.UUID
	rawLotID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAllocateOrderLineCommand(lineID, rawLotID kernel.UUID) (AllocateOrderLineCommand, error) {
	if err := errors.Join(lineID.Validate(), rawLotID.Validate()); err != nil {
		return AllocateOrderLineCommand{}, err
	}
	return AllocateOrderLineCommand{
		lineID:   lineID,
		rawLotID: rawLotID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AllocateOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderLineCommandIsNotConstructed)
}

func (c AllocateOrderLineCommand) LineID() kernel.UUID   { return c.lineID }
func (c AllocateOrderLineCommand) RawLotID() kernel.UUID { return c.rawLotID }
