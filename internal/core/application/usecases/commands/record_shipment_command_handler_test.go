package commands_test

import (
	"testing"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasedLot(t *testing.T, produced int) *packlot.PackagedLot {
	t.Helper()
	lineID := kernel.NewUUID()
	raw := approvedLot(t, "200")
	pl := fillingLot(t, raw, newOrder(t, "EXO-100", lineID, 100), lineID, 100)
	require.NoError(t, pl.CompleteFilling(produced, now))
	require.NoError(t, pl.Advance(now))
	require.Equal(t, packlot.Released, pl.Status())
	return pl
}

func TestRecordShipmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	pl := releasedLot(t, 60)
	cmd, err := commands.NewRecordShipmentCommand(pl.ID(), kernel.NewUUID(), 40, "AWB-1")
	require.NoError(t, err)

	r := newRepos()
	r.packaged.On("Get", mock.Anything, pl.ID()).Return(pl, nil).Once()
	r.packaged.On("Update", mock.Anything, pl).Return(nil).Once()
	r.expectCommit()

	err = commands.NewRecordShipmentCommandHandler(r.factory, clock).Handle(ctx, cmd)

	require.NoError(t, err)
	r.assert(t)
	assert.Equal(t, packlot.PartiallyShipped, pl.Status())
	assert.Equal(t, 40, pl.QtyShipped())
}

func TestRecordShipmentCommandHandler_Handle_OverShipment(t *testing.T) {
	ctx := t.Context()
	pl := releasedLot(t, 60)
	cmd, _ := commands.NewRecordShipmentCommand(pl.ID(), kernel.NewUUID(), 61, "")

	r := newRepos()
	r.packaged.On("Get", mock.Anything, pl.ID()).Return(pl, nil).Once()

	err := commands.NewRecordShipmentCommandHandler(r.factory, clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	r.packaged.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewRecordShipmentCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewRecordShipmentCommand(kernel.NewUUID(), kernel.UUID{}, 1, "")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewRecordShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), 0, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
