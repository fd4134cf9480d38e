package commands_test

import (
	"testing"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/ports"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var vial = ports.PackFormat{ID: "VIAL-2ML", Name: "2 ml vial", FillVolume: kernel.MustVolume("1.5")}

func TestCreatePackagedLotCommandHandler_Handle_ForOrderLine(t *testing.T) {
	// Given a 100 unit line allocated to the raw lot
	ctx := t.Context()
	raw := approvedLot(t, "200")
	lineID := kernel.NewUUID()
	o := newOrder(t, "EXO-100", lineID, 100)
	require.NoError(t, o.AssignLine(lineID, raw.ID()))

	r := newRepos()
	r.raw.On("Get", mock.Anything, raw.ID()).Return(raw, nil).Once()
	r.reference.On("PackFormat", mock.Anything, "VIAL-2ML").Return(vial, nil).Once()
	r.orders.On("GetByLine", mock.Anything, lineID).Return(o, nil).Once()
	r.orders.On("Update", mock.Anything, o).Return(nil).Once()
	var added *packlot.PackagedLot
	r.packaged.On("Add", mock.Anything, mock.AnythingOfType("*packlot.PackagedLot")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*packlot.PackagedLot) }).
		Return(nil).Once()
	r.expectCommit()

	cmd, err := commands.NewCreatePackagedLotCommand(kernel.NewUUID(), raw.ID(), "VIAL-2ML", 100, &lineID)
	require.NoError(t, err)

	// When
	err = commands.NewCreatePackagedLotCommandHandler(r.factory, clock).Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	r.assert(t)
	require.NotNil(t, added)
	assert.Equal(t, 100, added.QtyPlanned())
	assert.Equal(t, "150", added.RequiredVolume().String())
	line, _ := o.Line(lineID)
	assert.Equal(t, order.InProduction, line.Status())
}

func TestCreatePackagedLotCommandHandler_Handle_PlannedMustMatchLine(t *testing.T) {
	tests := []struct {
		name    string
		planned int
	}{
		{name: "should reject planning fewer units than the line", planned: 50},
		{name: "should reject planning more units than the line", planned: 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			ctx := t.Context()
			raw := approvedLot(t, "500")
			lineID := kernel.NewUUID()
			o := newOrder(t, "EXO-100", lineID, 100)
			require.NoError(t, o.AssignLine(lineID, raw.ID()))

			r := newRepos()
			r.raw.On("Get", mock.Anything, raw.ID()).Return(raw, nil).Once()
			r.reference.On("PackFormat", mock.Anything, "VIAL-2ML").Return(vial, nil).Once()
			r.orders.On("GetByLine", mock.Anything, lineID).Return(o, nil).Once()

			cmd, err := commands.NewCreatePackagedLotCommand(kernel.NewUUID(), raw.ID(), "VIAL-2ML", tt.planned, &lineID)
			require.NoError(t, err)

			// When
			err = commands.NewCreatePackagedLotCommandHandler(r.factory, clock).Handle(ctx, cmd)

			// Then
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			r.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			r.packaged.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			r.uow.AssertNotCalled(t, "Commit", mock.Anything)
			line, _ := o.Line(lineID)
			assert.Equal(t, order.Assigned, line.Status())
		})
	}
}
