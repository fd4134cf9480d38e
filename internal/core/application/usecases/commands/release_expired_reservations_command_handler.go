package commands

import (
	"context"
	"errors"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
)

const (
	ReasonRawLotExpired  = "raw lot expired"
	ReasonRawLotRejected = "raw lot rejected"
)

type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewReleaseExpiredReservationsCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of reservations released. Each release commits
// on its own so one conflicting reservation does not hold back the rest.
func (h ReleaseExpiredReservationsCommandHandler) Handle(ctx context.Context, cmd ReleaseExpiredReservationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var active []*reservation.Reservation
	err := inTx(ctx, h.uowFactory, func(uow UoW) error {
		var err error
		active, err = uow.ReservationRepository().FindActive(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	released := 0
	var failures []error
	for _, r := range active {
		ok, err := h.release(ctx, r.ID(), now)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if ok {
			released++
		}
	}
	return released, errors.Join(failures...)
}

func (h ReleaseExpiredReservationsCommandHandler) release(ctx context.Context, id kernel.UUID, now time.Time) (bool, error) {
	released := false
	err := inTx(ctx, h.uowFactory, func(uow UoW) error {
		repo := uow.ReservationRepository()
		r, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !r.IsActive() {
			return nil
		}
		lot, err := uow.RawLotRepository().Get(ctx, r.RawLotID())
		if err != nil {
			return err
		}

		reason := releaseReason(lot, now)
		if reason == "" {
			return nil
		}
		if err = r.Cancel(reason, now); err != nil {
			return err
		}
		released = true
		return repo.Update(ctx, r)
	})
	return released && err == nil, err
}

func releaseReason(lot *rawlot.RawLot, now time.Time) string {
	switch {
	case lot.Status() == rawlot.Rejected:
		return ReasonRawLotRejected
	case lot.Status() == rawlot.Approved && !lot.IsUsable(now):
		return ReasonRawLotExpired
	default:
		return ""
	}
}
