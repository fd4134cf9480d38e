package order

import (
	"errors"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// NewInput carries what is known when an order is placed.
type NewInput struct {
	ProductCode string
	FrozenSpec  spec.FrozenSpec
	ParentID    *kernel.UUID
	Lines       []LineInput
}

// Order is a demand record. It is the aggregate root for its lines and keeps
// the specification frozen when it was placed, so packaged lots produced
// against it inherit that specification.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a product code
//   - Must carry a valid frozen specification
//   - Must have at least one line, every line sharing the order's product code
//   - Line status transitions follow the rules of Status
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// parentID is the order this one was split from (nil for placed orders)
	parentID *kernel.UUID

	productCode string
	frozenSpec  spec.FrozenSpec
	lines       []*Line
	createdAt   time.Time

	// version is the revision loaded from storage, used for conditional updates
	version int

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an Order with every line in Created status.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewInput{
//	    ProductCode: "EXO-STD",
//	    FrozenSpec:  frozen,
//	    Lines:       []order.LineInput{{ID: kernel.NewUUID(), PackFormatID: "VIAL-2ML", QtyUnits: 100}},
//	}, time.Now())
func NewOrder(id kernel.UUID, in NewInput, createdAt time.Time) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProductCode(in.ProductCode),
		o.setFrozenSpec(in.FrozenSpec),
		o.setParent(in.ParentID),
	); err != nil {
		return nil, err
	}

	if len(in.Lines) == 0 {
		return nil, errs.NewValueIsRequiredError("order lines")
	}
	lines := make([]*Line, 0, len(in.Lines))
	var lineErrs error
	for _, li := range in.Lines {
		line, err := NewLine(li.ID, o.productCode, li.PackFormatID, li.QtyUnits)
		if err != nil {
			lineErrs = errors.Join(lineErrs, err)
			continue
		}
		lines = append(lines, line)
	}
	if lineErrs != nil {
		return nil, lineErrs
	}
	o.lines = lines

	return o, nil
}

// RestoreInput carries an order loaded from storage.
type RestoreInput struct {
	ID          kernel.UUID
	ParentID    *kernel.UUID
	ProductCode string
	FrozenSpec  spec.FrozenSpec
	Lines       []*Line
	CreatedAt   time.Time
	Version     int
}

// RestoreOrder rebuilds an Order from persisted state without resetting line
// statuses.
func RestoreOrder(in RestoreInput) (*Order, error) {
	o := &Order{
		createdAt:     in.CreatedAt,
		version:       in.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(in.ID),
		o.setProductCode(in.ProductCode),
		o.setFrozenSpec(in.FrozenSpec),
		o.setParent(in.ParentID),
	); err != nil {
		return nil, err
	}

	for _, l := range in.Lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	o.lines = in.Lines

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) ParentID() *kernel.UUID      { return o.parentID }
func (o *Order) ProductCode() string         { return o.productCode }
func (o *Order) FrozenSpec() spec.FrozenSpec { return o.frozenSpec }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) Version() int                { return o.version }

// Lines returns the order lines. The slice is a copy; the lines are not.
func (o *Order) Lines() []*Line {
	return append([]*Line(nil), o.lines...)
}

// Line returns the line with the given id.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.id.IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order line", lineID)
}

// IsClosed reports whether every line reached a final status.
func (o *Order) IsClosed() bool {
	for _, l := range o.lines {
		if !l.status.IsFinal() {
			return false
		}
	}
	return true
}

// AssignLine allocates a raw lot to a line. Reallocation is allowed while
// the line is Assigned.
func (o *Order) AssignLine(lineID, rawLotID kernel.UUID) error {
	l, err := o.Line(lineID)
	if err != nil {
		return err
	}
	return l.assign(rawLotID)
}

// StartLineProduction marks a line as being produced by a packaged lot.
func (o *Order) StartLineProduction(lineID kernel.UUID) error {
	l, err := o.Line(lineID)
	if err != nil {
		return err
	}
	return l.startProduction()
}

// CompleteLine closes a line with the quantity actually fulfilled, which may
// be less than requested.
func (o *Order) CompleteLine(lineID kernel.UUID, qtyFulfilled int) error {
	l, err := o.Line(lineID)
	if err != nil {
		return err
	}
	return l.complete(qtyFulfilled)
}

// PartiallyFulfillLine closes a line whose remainder is carried by a child order.
func (o *Order) PartiallyFulfillLine(lineID kernel.UUID, qtyFulfilled int) error {
	l, err := o.Line(lineID)
	if err != nil {
		return err
	}
	return l.partiallyFulfill(qtyFulfilled)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	o.productCode = code
	return nil
}

func (o *Order) setFrozenSpec(s spec.FrozenSpec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.frozenSpec = s
	return nil
}

func (o *Order) setParent(parentID *kernel.UUID) error {
	if parentID == nil {
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	o.parentID = parentID
	return nil
}
