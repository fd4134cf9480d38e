package commands

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/reservation"
)

type CancelReservationCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCancelReservationCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CancelReservationCommandHandler {
	return CancelReservationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CancelReservationCommandHandler) Handle(ctx context.Context, cmd CloseReservationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return closeReservation(ctx, h.uowFactory, cmd.ReservationID(), func(r *reservation.Reservation) error {
		return r.Cancel(cmd.Reason(), h.clock.Now())
	})
}

type ConsumeReservationCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewConsumeReservationCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ConsumeReservationCommandHandler {
	return ConsumeReservationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ConsumeReservationCommandHandler) Handle(ctx context.Context, cmd CloseReservationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return closeReservation(ctx, h.uowFactory, cmd.ReservationID(), func(r *reservation.Reservation) error {
		return r.Consume(h.clock.Now())
	})
}

func closeReservation(ctx context.Context, f UoWFactory, id kernel.UUID, fn func(*reservation.Reservation) error) error {
	return inTx(ctx, f, func(uow UoW) error {
		repo := uow.ReservationRepository()
		r, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = fn(r); err != nil {
			return err
		}
		return repo.Update(ctx, r)
	})
}
