package commands

import (
	"errors"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderCommand represents a request to place an order for a product.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "EXO-100", []order.LineInput{
//	    {ID: kernel.NewUUID(), PackFormatID: "VIAL-2ML", QtyUnits: 100},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	productCode string
	lines       []order.LineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and quantities. Pack formats
// are checked against reference data by the handler.
func NewCreateOrderCommand(orderID kernel.UUID, productCode string, lines []order.LineInput) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setProductCode(productCode),
		c.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CreateOrderCommand) ProductCode() string      { return c.productCode }
func (c CreateOrderCommand) Lines() []order.LineInput { return append([]order.LineInput(nil), c.lines...) }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}

	c.productCode = code
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.LineInput) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	var err error
	for _, l := range lines {
		if l.QtyUnits <= 0 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("line quantity", l.QtyUnits, 1, "unbounded"))
		}
	}
	if err != nil {
		return err
	}

	c.lines = lines
	return nil
}
