package commands

import (
	"errors"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var (
	ErrReserveVolumeCommandIsNotConstructed = errors.New(
		"ReserveVolumeCommand must be created via NewReserveVolumeCommand constructor",
	)
	ErrCloseReservationCommandIsNotConstructed = errors.New(
		"CloseReservationCommand must be created via NewCloseReservationCommand constructor",
	)
)

// ReserveVolumeCommand holds raw-lot volume for an order line.
type ReserveVolumeCommand struct {
	reservationID kernel.UUID
	rawLotID      kernel.UUID
	orderLineID   kernel.UUID
	volume        kernel.Volume

	guard guard.ConstructorGuard
}

func NewReserveVolumeCommand(reservationID, rawLotID, orderLineID kernel.UUID, volume kernel.Volume) (ReserveVolumeCommand, error) {
	if err := errors.Join(reservationID.Validate(), rawLotID.Validate(), orderLineID.Validate()); err != nil {
		return ReserveVolumeCommand{}, err
	}
	if volume.IsZero() {
		return ReserveVolumeCommand{}, errs.NewValueIsInvalidErrorWithCause("volume", errors.New("must be greater than 0"))
	}
	return ReserveVolumeCommand{
		reservationID: reservationID,
		rawLotID:      rawLotID,
		orderLineID:   orderLineID,
		volume:        volume,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ReserveVolumeCommand) Validate() error {
	return c.guard.Validate(ErrReserveVolumeCommandIsNotConstructed)
}

func (c ReserveVolumeCommand) ReservationID() kernel.UUID { return c.reservationID }
func (c ReserveVolumeCommand) RawLotID() kernel.UUID      { return c.rawLotID }
func (c ReserveVolumeCommand) OrderLineID() kernel.UUID   { return c.orderLineID }
func (c ReserveVolumeCommand) Volume() kernel.Volume      { return c.volume }

// CloseReservationCommand cancels or consumes an Active reservation. The
// reason is kept on cancellation only.
type CloseReservationCommand struct {
	reservationID kernel.UUID
	reason        string

	guard guard.ConstructorGuard
}

func NewCloseReservationCommand(reservationID kernel.UUID, reason string) (CloseReservationCommand, error) {
	if err := reservationID.Validate(); err != nil {
		return CloseReservationCommand{}, err
	}
	return CloseReservationCommand{
		reservationID: reservationID,
		reason:        strings.TrimSpace(reason),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CloseReservationCommand) Validate() error {
	return c.guard.Validate(ErrCloseReservationCommandIsNotConstructed)
}

func (c CloseReservationCommand) ReservationID() kernel.UUID { return c.reservationID }
func (c CloseReservationCommand) Reason() string             { return c.reason }
