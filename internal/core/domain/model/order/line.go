package order

import (
	"errors"
	"fmt"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// LineInput describes a requested line when an order is created.
type LineInput struct {
	ID           kernel.UUID
	PackFormatID string
	QtyUnits     int
}

// Line is a requested quantity of one pack format. It belongs to an Order
// and is only changed through it.
type Line struct {
	id           kernel.UUID
	productCode  string
	packFormatID string
	qtyUnits     int
	qtyFulfilled int
	rawLotID     *kernel.UUID
	status       Status

	isConstructed bool
}

// NewLine creates a line in Created status with nothing fulfilled.
func NewLine(id kernel.UUID, productCode, packFormatID string, qtyUnits int) (*Line, error) {
	l := &Line{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setProduct(productCode, packFormatID),
		l.setQtyUnits(qtyUnits),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLine rebuilds a line loaded from storage. Status and allocation must
// agree with each other.
func RestoreLine(
	id kernel.UUID,
	productCode, packFormatID string,
	qtyUnits, qtyFulfilled int,
	rawLotID *kernel.UUID,
	status Status,
) (*Line, error) {
	l, err := NewLine(id, productCode, packFormatID, qtyUnits)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		status.Validate(),
		status.ValidateCanHaveRawLot(rawLotID != nil),
	); err != nil {
		return nil, err
	}
	if qtyFulfilled < 0 || qtyFulfilled > qtyUnits {
		return nil, errs.NewValueIsOutOfRangeError("fulfilled quantity", qtyFulfilled, 0, qtyUnits)
	}

	l.qtyFulfilled = qtyFulfilled
	l.rawLotID = rawLotID
	l.status = status
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID        { return l.id }
func (l *Line) ProductCode() string    { return l.productCode }
func (l *Line) PackFormatID() string   { return l.packFormatID }
func (l *Line) QtyUnits() int          { return l.qtyUnits }
func (l *Line) QtyFulfilled() int      { return l.qtyFulfilled }
func (l *Line) RawLotID() *kernel.UUID { return l.rawLotID }
func (l *Line) Status() Status         { return l.status }

// Remaining is the quantity still owed on the line.
func (l *Line) Remaining() int {
	return l.qtyUnits - l.qtyFulfilled
}

func (l *Line) assign(rawLotID kernel.UUID) error {
	if err := rawLotID.Validate(); err != nil {
		return err
	}

	newStatus, err := l.status.Assign()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.rawLotID = &rawLotID
	return nil
}

func (l *Line) startProduction() error {
	newStatus, err := l.status.StartProduction()
	if err != nil {
		return err
	}

	l.status = newStatus
	return nil
}

func (l *Line) complete(qtyFulfilled int) error {
	if err := l.checkFulfilled(qtyFulfilled); err != nil {
		return err
	}

	newStatus, err := l.status.Complete()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.qtyFulfilled = qtyFulfilled
	return nil
}

func (l *Line) partiallyFulfill(qtyFulfilled int) error {
	if err := l.checkFulfilled(qtyFulfilled); err != nil {
		return err
	}
	if qtyFulfilled == l.qtyUnits {
		return errs.NewValueIsInvalidErrorWithCause("fulfilled quantity",
			fmt.Errorf("line %s is fully fulfilled, nothing to split", l.id))
	}

	newStatus, err := l.status.PartiallyFulfill()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.qtyFulfilled = qtyFulfilled
	return nil
}

func (l *Line) checkFulfilled(qty int) error {
	if qty < 0 || qty > l.qtyUnits {
		return errs.NewValueIsOutOfRangeError("fulfilled quantity", qty, 0, l.qtyUnits)
	}
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProduct(productCode, packFormatID string) error {
	productCode = strings.TrimSpace(productCode)
	packFormatID = strings.TrimSpace(packFormatID)

	var err error
	if productCode == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("product code"))
	}
	if packFormatID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pack format"))
	}
	if err != nil {
		return err
	}

	l.productCode = productCode
	l.packFormatID = packFormatID
	return nil
}

func (l *Line) setQtyUnits(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}
	l.qtyUnits = qty
	return nil
}
