package commands

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/services"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrCompleteFillingCommandIsNotConstructed = errors.New(
	"CompleteFillingCommand must be created via NewCompleteFillingCommand constructor",
)

// CompleteFillingCommand reports the produced quantity of a packaged lot.
// A short fill for an order line also carries the reconciliation choice;
// SplitRemainder uses the child ids for the new order and its line.
type CompleteFillingCommand struct {
	packLotID      kernel.UUID
	qtyProduced    int
	reconciliation services.Reconciliation
	childOrderID   kernel.UUID
	childLineID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteFillingCommand(
	packLotID kernel.UUID,
	qtyProduced int,
	reconciliation services.Reconciliation,
	childOrderID, childLineID kernel.UUID,
) (CompleteFillingCommand, error) {
	if err := packLotID.Validate(); err != nil {
		return CompleteFillingCommand{}, err
	}
	if qtyProduced < 1 {
		return CompleteFillingCommand{}, errs.NewValueIsOutOfRangeError("produced quantity", qtyProduced, 1, "unbounded")
	}
	if reconciliation == services.SplitRemainder {
		if err := errors.Join(childOrderID.Validate(), childLineID.Validate()); err != nil {
			return CompleteFillingCommand{}, err
		}
	}
	return CompleteFillingCommand{
		packLotID:      packLotID,
		qtyProduced:    qtyProduced,
		reconciliation: reconciliation,
		childOrderID:   childOrderID,
		childLineID:    childLineID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteFillingCommand) Validate() error {
	return c.guard.Validate(ErrCompleteFillingCommandIsNotConstructed)
}

func (c CompleteFillingCommand) PackLotID() kernel.UUID                  { return c.packLotID }
func (c CompleteFillingCommand) QtyProduced() int                        { return c.qtyProduced }
func (c CompleteFillingCommand) Reconciliation() services.Reconciliation { return c.reconciliation }
func (c CompleteFillingCommand) ChildOrderID() kernel.UUID               { return c.childOrderID }
func (c CompleteFillingCommand) ChildLineID() kernel.UUID                { return c.childLineID }
