package ports

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their lines.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists line changes. It is conditional on aggregate.Version().
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByLine retrieves the order that owns a line.
	GetByLine(ctx context.Context, lineID kernel.UUID) (*order.Order, error)
}
