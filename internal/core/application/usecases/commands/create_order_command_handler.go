package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places an order with the product definition
// frozen at placement time.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle checks every line's pack format against reference data, freezes
// the product definition and persists the order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return inTx(ctx, h.uowFactory, func(uow UoW) error {
		for _, l := range cmd.Lines() {
			if _, err := uow.ReferenceRepository().PackFormat(ctx, l.PackFormatID); err != nil {
				return err
			}
		}

		frozen, err := freezeProduct(ctx, uow, cmd.ProductCode(), h.clock)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(cmd.OrderID(), order.NewInput{
			ProductCode: cmd.ProductCode(),
			FrozenSpec:  frozen,
			Lines:       cmd.Lines(),
		}, h.clock.Now())
		if err != nil {
			return err
		}

		return uow.OrderRepository().Add(ctx, o)
	})
}
