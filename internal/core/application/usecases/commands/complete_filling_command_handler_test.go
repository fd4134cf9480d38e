package commands_test

import (
	"testing"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/core/domain/services"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fillFixture struct {
	r        *repos
	lineID   kernel.UUID
	order    *order.Order
	packed   *packlot.PackagedLot
	reserved *reservation.Reservation
}

// newFillFixture plans 100 units of 1.5 ml from a 200 ml raw lot for an
// order line holding a 150 ml reservation, and stubs every load.
func newFillFixture(t *testing.T) fillFixture {
	t.Helper()
	raw := approvedLot(t, "200")
	lineID := kernel.NewUUID()
	o := newOrder(t, "EXO-100", lineID, 100)
	require.NoError(t, o.AssignLine(lineID, raw.ID()))
	require.NoError(t, o.StartLineProduction(lineID))
	pl := fillingLot(t, raw, o, lineID, 100)
	held := reserve(t, raw.ID(), lineID, "150")

	r := newRepos()
	r.packaged.On("Get", mock.Anything, pl.ID()).Return(pl, nil).Once()
	r.raw.On("Get", mock.Anything, raw.ID()).Return(raw, nil).Once()
	r.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	r.reservations.On("FindActiveByRawLot", mock.Anything, raw.ID()).Return([]*reservation.Reservation{held}, nil).Once()

	return fillFixture{r: r, lineID: lineID, order: o, packed: pl, reserved: held}
}

func (f fillFixture) expectWrites() {
	f.r.packaged.On("Update", mock.Anything, f.packed).Return(nil).Once()
	f.r.raw.On("Update", mock.Anything, mock.AnythingOfType("*rawlot.RawLot")).Return(nil).Once()
	f.r.reservations.On("Update", mock.Anything, f.reserved).Return(nil).Once()
	f.r.orders.On("Update", mock.Anything, f.order).Return(nil).Once()
	f.r.expectCommit()
}

func TestCompleteFillingCommandHandler_Handle_SplitRemainder(t *testing.T) {
	ctx := t.Context()
	f := newFillFixture(t)
	f.expectWrites()
	var child *order.Order
	f.r.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { child = args.Get(1).(*order.Order) }).
		Return(nil).Once()

	childOrderID, childLineID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewCompleteFillingCommand(f.packed.ID(), 60, services.SplitRemainder, childOrderID, childLineID)
	require.NoError(t, err)

	err = commands.NewCompleteFillingCommandHandler(f.r.factory, clock).Handle(ctx, cmd)

	require.NoError(t, err)
	f.r.assert(t)
	assert.Equal(t, packlot.Filled, f.packed.Status())
	assert.Equal(t, 60, f.packed.QtyProduced())
	assert.Equal(t, reservation.Consumed, f.reserved.Status())

	line, _ := f.order.Line(f.lineID)
	assert.Equal(t, order.PartiallyFulfilled, line.Status())

	require.NotNil(t, child)
	assert.Equal(t, childOrderID, child.ID())
	require.Len(t, child.Lines(), 1)
	assert.Equal(t, childLineID, child.Lines()[0].ID())
	assert.Equal(t, 40, child.Lines()[0].QtyUnits())
}

func TestCompleteFillingCommandHandler_Handle_FullFill(t *testing.T) {
	ctx := t.Context()
	f := newFillFixture(t)
	f.expectWrites()

	cmd, _ := commands.NewCompleteFillingCommand(f.packed.ID(), 100, services.ReconciliationUnknown, kernel.UUID{}, kernel.UUID{})

	err := commands.NewCompleteFillingCommandHandler(f.r.factory, clock).Handle(ctx, cmd)

	require.NoError(t, err)
	f.r.assert(t)
	line, _ := f.order.Line(f.lineID)
	assert.Equal(t, order.Completed, line.Status())
	assert.Equal(t, 100, line.QtyFulfilled())
	f.r.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCompleteFillingCommandHandler_Handle_ShortFillWithoutChoice(t *testing.T) {
	ctx := t.Context()
	f := newFillFixture(t)

	cmd, _ := commands.NewCompleteFillingCommand(f.packed.ID(), 60, services.ReconciliationUnknown, kernel.UUID{}, kernel.UUID{})

	err := commands.NewCompleteFillingCommandHandler(f.r.factory, clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	f.r.packaged.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.r.raw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.r.uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, reservation.Active, f.reserved.Status())
}

func TestNewCompleteFillingCommand_SplitNeedsChildIDs(t *testing.T) {
	_, err := commands.NewCompleteFillingCommand(kernel.NewUUID(), 60, services.SplitRemainder, kernel.UUID{}, kernel.NewUUID())
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewCompleteFillingCommand(kernel.NewUUID(), 0, services.AcceptAsIs, kernel.UUID{}, kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
