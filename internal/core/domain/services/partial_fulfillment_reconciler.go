package services

import (
	"errors"
	"fmt"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/pkg/errs"
)

// Reconciliation is the operator's choice for a short fill.
type Reconciliation int

const (
	ReconciliationUnknown Reconciliation = iota
	AcceptAsIs
	SplitRemainder
)

var reconciliationNames = map[Reconciliation]string{
	AcceptAsIs:     "AcceptAsIs",
	SplitRemainder: "SplitRemainder",
}

func (r Reconciliation) String() string {
	if n, ok := reconciliationNames[r]; ok {
		return n
	}
	return "Unknown"
}

// ParseReconciliation maps "" to ReconciliationUnknown, meaning no choice was made.
func ParseReconciliation(s string) (Reconciliation, error) {
	if s == "" {
		return ReconciliationUnknown, nil
	}
	for r, name := range reconciliationNames {
		if name == s {
			return r, nil
		}
	}
	return ReconciliationUnknown, errs.NewValueIsInvalidErrorWithCause("reconciliation",
		fmt.Errorf("%q is not AcceptAsIs or SplitRemainder", s))
}

// ReconcileInput gathers the aggregates touched when filling completes.
// Order and ChildOrderID are unused for lots produced for stock.
type ReconcileInput struct {
	PackagedLot  *packlot.PackagedLot
	RawLot       *rawlot.RawLot
	Order        *order.Order
	Reservations []*reservation.Reservation
	Choice       Reconciliation
	ChildOrderID kernel.UUID
	ChildLineID  kernel.UUID
}

// ReconcileResult reports what the reconciliation changed.
type ReconcileResult struct {
	Debit      kernel.Volume
	Consumed   []*reservation.Reservation
	ChildOrder *order.Order
}

// PartialFulfillmentReconciler settles raw material and demand once a
// packaged lot reports its produced quantity.
//
// Business rules:
//   - A lot filled for an order line must have planned the line's quantity
//   - The raw lot is debited produced × fill volume, whatever the choice
//   - The debit may use free volume and the line's own reservations, never
//     volume reserved for other lines
//   - Active reservations of the line on the raw lot are consumed
//   - A full fill completes the line
//   - A short fill needs a choice: AcceptAsIs completes the line with the
//     produced quantity, SplitRemainder closes it as PartiallyFulfilled and
//     opens a child order for planned − produced units
type PartialFulfillmentReconciler struct {
	ledger ReservationLedger
}

func NewPartialFulfillmentReconciler() PartialFulfillmentReconciler {
	return PartialFulfillmentReconciler{ledger: NewReservationLedger()}
}

func (p PartialFulfillmentReconciler) Reconcile(in ReconcileInput, now time.Time) (ReconcileResult, error) {
	var res ReconcileResult

	pl := in.PackagedLot
	if err := errors.Join(pl.Validate(), in.RawLot.Validate()); err != nil {
		return res, err
	}
	if !pl.HasProduced() {
		return res, errs.NewPreconditionNotMetError("packaged lot", pl.ID(), "produced quantity")
	}
	if !pl.RawLotID().IsEqual(in.RawLot.ID()) {
		return res, errs.NewValueIsInvalidErrorWithCause("raw lot",
			fmt.Errorf("packaged lot %s is filled from %s, not %s", pl.ID(), pl.RawLotID(), in.RawLot.ID()))
	}

	var line *order.Line
	if pl.OrderLineID() != nil {
		var err error
		if line, err = orderLine(in); err != nil {
			return res, err
		}
	}

	if pl.Shortfall() > 0 && line != nil {
		if in.Choice == ReconciliationUnknown {
			return res, errs.NewValueIsRequiredErrorWithCause("reconciliation",
				fmt.Errorf("packaged lot %s produced %d of %d", pl.ID(), pl.QtyProduced(), pl.QtyPlanned()))
		}
		if in.Choice == SplitRemainder {
			if err := errors.Join(in.ChildOrderID.Validate(), in.ChildLineID.Validate()); err != nil {
				return res, err
			}
		}
	}

	res.Debit = pl.ConsumedVolume()
	covered := p.ledger.Coverable(in.RawLot, pl.OrderLineID(), in.Reservations)
	if res.Debit.GreaterThan(covered) {
		return res, errs.NewInsufficientVolumeError(in.RawLot.ID(), res.Debit, covered)
	}
	if err := in.RawLot.DrawVolume(res.Debit); err != nil {
		return res, err
	}

	if line == nil {
		return res, nil
	}

	for _, r := range OfLine(line.ID(), ofLot(in.RawLot.ID(), in.Reservations)) {
		if !r.IsActive() {
			continue
		}
		if err := r.Consume(now); err != nil {
			return res, err
		}
		res.Consumed = append(res.Consumed, r)
	}

	child, err := settleLine(in, line, now)
	if err != nil {
		return res, err
	}
	res.ChildOrder = child
	return res, nil
}

// orderLine finds the packaged lot's line and checks the lot was planned for
// exactly the line's quantity.
func orderLine(in ReconcileInput) (*order.Line, error) {
	pl := in.PackagedLot
	if err := in.Order.Validate(); err != nil {
		return nil, err
	}
	line, err := in.Order.Line(*pl.OrderLineID())
	if err != nil {
		return nil, err
	}
	if pl.QtyPlanned() != line.QtyUnits() {
		return nil, errs.NewValueIsInvalidErrorWithCause("qty planned",
			fmt.Errorf("packaged lot %s plans %d units for line %s of %d", pl.ID(), pl.QtyPlanned(), line.ID(), line.QtyUnits()))
	}
	return line, nil
}

func settleLine(in ReconcileInput, line *order.Line, now time.Time) (*order.Order, error) {
	pl := in.PackagedLot
	o := in.Order
	if pl.Shortfall() == 0 || in.Choice == AcceptAsIs {
		return nil, o.CompleteLine(line.ID(), pl.QtyProduced())
	}

	if err := o.PartiallyFulfillLine(line.ID(), pl.QtyProduced()); err != nil {
		return nil, err
	}
	parentID := o.ID()
	return order.NewOrder(in.ChildOrderID, order.NewInput{
		ProductCode: o.ProductCode(),
		FrozenSpec:  o.FrozenSpec(),
		ParentID:    &parentID,
		Lines: []order.LineInput{{
			ID:           in.ChildLineID,
			PackFormatID: line.PackFormatID(),
			QtyUnits:     pl.Shortfall(),
		}},
	}, now)
}
