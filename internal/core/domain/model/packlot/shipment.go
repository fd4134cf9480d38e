package packlot

import (
	"errors"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

// Shipment is one dispatch of units from a released lot.
type Shipment struct {
	id        kernel.UUID
	qty       int
	reference string
	shippedAt time.Time
}

func NewShipment(id kernel.UUID, qty int, reference string, shippedAt time.Time) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if qty < 1 {
		return nil, errs.NewValueIsOutOfRangeError("shipment quantity", qty, 1, "produced")
	}
	if shippedAt.IsZero() {
		return nil, errs.NewValueIsRequiredErrorWithCause("shipped at", errors.New("shipment time is mandatory"))
	}
	return &Shipment{id: id, qty: qty, reference: reference, shippedAt: shippedAt}, nil
}

func (s *Shipment) ID() kernel.UUID      { return s.id }
func (s *Shipment) Qty() int             { return s.qty }
func (s *Shipment) Reference() string    { return s.reference }
func (s *Shipment) ShippedAt() time.Time { return s.shippedAt }
