package services

import (
	"fmt"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/pkg/errs"
)

// ReservationLedger derives available raw-lot volume from the container and
// the lot's active reservations. Nothing is cached: callers pass the current
// reservations of the lot on every call.
//
// Business rules:
//   - available = max(0, current volume − Σ active reservations)
//   - a reservation larger than available fails with InsufficientVolume
//   - rejected lots cannot be reserved
//   - a line may draw on free volume plus its own active reservations
type ReservationLedger struct{}

func NewReservationLedger() ReservationLedger {
	return ReservationLedger{}
}

// AvailableVolume is the lot's current volume not held by active
// reservations. Reservations of other lots are ignored.
func (ReservationLedger) AvailableVolume(lot *rawlot.RawLot, reservations []*reservation.Reservation) kernel.Volume {
	held := reservation.ActiveVolume(ofLot(lot.ID(), reservations))
	return lot.CurrentVolume().SaturatingSub(held)
}

// Reserve creates an Active reservation of volume on lot for an order line.
//
// Example:
//
//	ledger := services.NewReservationLedger()
//	r, err := ledger.Reserve(kernel.NewUUID(), lot, lineID, kernel.MustVolume("40"), existing, now)
//	if errors.Is(err, errs.ErrInsufficientVolume) {
//	    // pick another lot
//	}
func (l ReservationLedger) Reserve(
	id kernel.UUID,
	lot *rawlot.RawLot,
	orderLineID kernel.UUID,
	volume kernel.Volume,
	reservations []*reservation.Reservation,
	now time.Time,
) (*reservation.Reservation, error) {
	if err := lot.Validate(); err != nil {
		return nil, err
	}
	if lot.Status() == rawlot.Rejected {
		return nil, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("raw lot %s is %s and cannot be reserved", lot.ID(), lot.Status()))
	}

	available := l.AvailableVolume(lot, reservations)
	if volume.GreaterThan(available) {
		return nil, errs.NewInsufficientVolumeError(lot.ID(), volume, available)
	}

	return reservation.NewReservation(id, lot.ID(), orderLineID, volume, now)
}

// AdmitFilling checks that lot can supply required volume to a packaged lot
// of the given order line. The line's own active reservations on the lot
// count toward the requirement together with the free volume. A nil line
// relies on free volume only.
func (l ReservationLedger) AdmitFilling(
	lot *rawlot.RawLot,
	orderLineID *kernel.UUID,
	required kernel.Volume,
	reservations []*reservation.Reservation,
	now time.Time,
) error {
	if !lot.IsUsable(now) {
		return errs.NewPreconditionNotMetError("raw lot", lot.ID(), "approved unexpired raw lot")
	}

	covered := l.Coverable(lot, orderLineID, reservations)
	if required.GreaterThan(covered) {
		return errs.NewInsufficientVolumeError(lot.ID(), required, covered)
	}
	return nil
}

// Coverable is the volume an order line may draw from lot: the free volume
// plus the line's own active reservations on it. A nil line gets the free
// volume only.
func (l ReservationLedger) Coverable(
	lot *rawlot.RawLot,
	orderLineID *kernel.UUID,
	reservations []*reservation.Reservation,
) kernel.Volume {
	covered := l.AvailableVolume(lot, reservations)
	if orderLineID != nil {
		covered = covered.Add(reservation.ActiveVolume(OfLine(*orderLineID, ofLot(lot.ID(), reservations))))
	}
	return covered
}

// OfLine filters reservations held for one order line.
func OfLine(lineID kernel.UUID, reservations []*reservation.Reservation) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, r := range reservations {
		if r.OrderLineID().IsEqual(lineID) {
			out = append(out, r)
		}
	}
	return out
}

func ofLot(lotID kernel.UUID, reservations []*reservation.Reservation) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, r := range reservations {
		if r.RawLotID().IsEqual(lotID) {
			out = append(out, r)
		}
	}
	return out
}
