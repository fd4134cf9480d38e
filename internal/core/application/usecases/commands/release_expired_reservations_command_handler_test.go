package commands_test

import (
	"errors"
	"testing"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseExpiredReservationsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	expired := rawLot(t, rawlot.Approved, "100", now.AddDate(0, 0, -40))
	usable := approvedLot(t, "100")
	rejected := rawLot(t, rawlot.Rejected, "100", now)

	onExpired := reserve(t, expired.ID(), kernel.NewUUID(), "10")
	onUsable := reserve(t, usable.ID(), kernel.NewUUID(), "10")
	onRejected := reserve(t, rejected.ID(), kernel.NewUUID(), "10")

	r := newRepos()
	r.reservations.On("FindActive", mock.Anything).
		Return([]*reservation.Reservation{onExpired, onUsable, onRejected}, nil).Once()
	for _, pair := range []struct {
		res *reservation.Reservation
		lot *rawlot.RawLot
	}{{onExpired, expired}, {onUsable, usable}, {onRejected, rejected}} {
		r.reservations.On("Get", mock.Anything, pair.res.ID()).Return(pair.res, nil).Once()
		r.raw.On("Get", mock.Anything, pair.lot.ID()).Return(pair.lot, nil).Once()
	}
	r.reservations.On("Update", mock.Anything, onExpired).Return(nil).Once()
	r.reservations.On("Update", mock.Anything, onRejected).Return(nil).Once()
	r.expectCommit()

	released, err := commands.NewReleaseExpiredReservationsCommandHandler(r.factory, clock).
		Handle(ctx, commands.NewReleaseExpiredReservationsCommand())

	require.NoError(t, err)
	r.assert(t)
	assert.Equal(t, 2, released)
	assert.Equal(t, reservation.Cancelled, onExpired.Status())
	assert.Equal(t, commands.ReasonRawLotExpired, onExpired.CancelReason())
	assert.Equal(t, reservation.Active, onUsable.Status())
	assert.Equal(t, reservation.Cancelled, onRejected.Status())
	assert.Equal(t, commands.ReasonRawLotRejected, onRejected.CancelReason())
}

func TestReleaseExpiredReservationsCommandHandler_Handle_ContinuesPastFailures(t *testing.T) {
	ctx := t.Context()
	expired := rawLot(t, rawlot.Approved, "100", now.AddDate(0, 0, -40))
	first := reserve(t, expired.ID(), kernel.NewUUID(), "10")
	second := reserve(t, expired.ID(), kernel.NewUUID(), "10")

	r := newRepos()
	r.reservations.On("FindActive", mock.Anything).Return([]*reservation.Reservation{first, second}, nil).Once()
	r.reservations.On("Get", mock.Anything, first.ID()).Return(nil, errs.NewObjectNotFoundError("reservation", first.ID())).Once()
	r.reservations.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	r.raw.On("Get", mock.Anything, expired.ID()).Return(expired, nil).Once()
	r.reservations.On("Update", mock.Anything, second).Return(nil).Once()
	r.expectCommit()

	released, err := commands.NewReleaseExpiredReservationsCommandHandler(r.factory, clock).
		Handle(ctx, commands.NewReleaseExpiredReservationsCommand())

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, 1, released)
	assert.Equal(t, reservation.Cancelled, second.Status())
}

func TestReleaseExpiredReservationsCommandHandler_Handle_ListError(t *testing.T) {
	r := newRepos()
	r.reservations.On("FindActive", mock.Anything).Return(nil, errors.New("db down")).Once()

	released, err := commands.NewReleaseExpiredReservationsCommandHandler(r.factory, clock).
		Handle(t.Context(), commands.NewReleaseExpiredReservationsCommand())

	require.Error(t, err)
	assert.Zero(t, released)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}
