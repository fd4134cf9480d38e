// Package reservation models a claim of raw-lot volume by an order line.
package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

var ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation or RestoreReservation")

// Reservation holds volume of a raw lot for an order line until it is
// consumed by filling or cancelled.
type Reservation struct {
	id           kernel.UUID
	rawLotID     kernel.UUID
	orderLineID  kernel.UUID
	volume       kernel.Volume
	status       Status
	cancelReason string
	createdAt    time.Time
	closedAt     *time.Time
	version      int

	isConstructed bool
}

func NewReservation(id, rawLotID, orderLineID kernel.UUID, volume kernel.Volume, createdAt time.Time) (*Reservation, error) {
	if err := errors.Join(
		id.Validate(),
		requiredID("raw lot", rawLotID),
		requiredID("order line", orderLineID),
	); err != nil {
		return nil, err
	}
	if volume.IsZero() {
		return nil, errs.NewValueIsInvalidErrorWithCause("volume", errors.New("must be greater than 0"))
	}
	return &Reservation{
		id:            id,
		rawLotID:      rawLotID,
		orderLineID:   orderLineID,
		volume:        volume,
		status:        Active,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func RestoreReservation(
	id, rawLotID, orderLineID kernel.UUID,
	volume kernel.Volume,
	status Status,
	cancelReason string,
	createdAt time.Time,
	closedAt *time.Time,
	version int,
) (*Reservation, error) {
	r, err := NewReservation(id, rawLotID, orderLineID, volume, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	r.status = status
	r.cancelReason = cancelReason
	r.closedAt = closedAt
	r.version = version
	return r, nil
}

func (r *Reservation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReservationIsNotConstructed
	}
	return nil
}

func (r *Reservation) ID() kernel.UUID          { return r.id }
func (r *Reservation) RawLotID() kernel.UUID    { return r.rawLotID }
func (r *Reservation) OrderLineID() kernel.UUID { return r.orderLineID }
func (r *Reservation) Volume() kernel.Volume    { return r.volume }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) CancelReason() string     { return r.cancelReason }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) ClosedAt() *time.Time     { return r.closedAt }
func (r *Reservation) Version() int             { return r.version }
func (r *Reservation) IsActive() bool           { return r.status == Active }

// Consume marks the reserved volume as drawn by filling.
func (r *Reservation) Consume(now time.Time) error {
	if err := r.requireActive("consume"); err != nil {
		return err
	}
	r.status = Consumed
	r.closedAt = &now
	return nil
}

// Cancel releases the reserved volume back to the lot.
func (r *Reservation) Cancel(reason string, now time.Time) error {
	if err := r.requireActive("cancel"); err != nil {
		return err
	}
	r.status = Cancelled
	r.cancelReason = strings.TrimSpace(reason)
	r.closedAt = &now
	return nil
}

func (r *Reservation) requireActive(action string) error {
	if r.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("cannot %s reservation %s in %s", action, r.id, r.status))
	}
	return nil
}

// ActiveVolume sums the volume of the active reservations in rs.
func ActiveVolume(rs []*Reservation) kernel.Volume {
	total := kernel.ZeroVolume
	for _, r := range rs {
		if r.IsActive() {
			total = total.Add(r.volume)
		}
	}
	return total
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
