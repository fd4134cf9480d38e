package commands_test

import (
	"testing"
	"time"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/core/domain/model/spec"

	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	clock = kernel.FixedClock(now)
)

func emptySpec(t *testing.T) spec.FrozenSpec {
	t.Helper()
	s, err := spec.FromDocument(spec.Document{FrozenAt: now})
	require.NoError(t, err)
	return s
}

// rawLot restores a raw lot of EXO-100 holding current ml. Approved lots get
// a 30 day shelf life decided at decidedAt.
func rawLot(t *testing.T, status rawlot.Status, current string, decidedAt time.Time) *rawlot.RawLot {
	t.Helper()
	id := kernel.NewUUID()
	c, err := container.RestoreContainer(kernel.NewUUID(), id, container.OwnerRawLot,
		kernel.MustVolume("1000"), kernel.MustVolume(current), container.StatusFilled)
	require.NoError(t, err)

	var decisions []*qc.Decision
	if status == rawlot.Approved {
		d, err := qc.NewDecision(kernel.NewUUID(), qc.DecisionInput{
			Gate: spec.QCGroupRaw, Verdict: qc.Approved, ShelfLifeDays: 30,
		}, decidedAt)
		require.NoError(t, err)
		decisions = append(decisions, d)
	}

	lot, err := rawlot.RestoreRawLot(rawlot.RestoreInput{
		ID:          id,
		ProductCode: "EXO-100",
		Mode:        rawlot.ModeStockBuild,
		Status:      status,
		FrozenSpec:  emptySpec(t),
		Container:   c,
		Decisions:   decisions,
		CreatedAt:   now.AddDate(0, 0, -2),
		Version:     3,
	})
	require.NoError(t, err)
	return lot
}

func approvedLot(t *testing.T, current string) *rawlot.RawLot {
	t.Helper()
	return rawLot(t, rawlot.Approved, current, now.AddDate(0, 0, -1))
}

func newOrder(t *testing.T, productCode string, lineID kernel.UUID, units int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewInput{
		ProductCode: productCode,
		FrozenSpec:  emptySpec(t),
		Lines:       []order.LineInput{{ID: lineID, PackFormatID: "VIAL-2ML", QtyUnits: units}},
	}, now)
	require.NoError(t, err)
	return o
}

// fillingLot plans units at 1.5 ml each from raw for an order line and
// advances it to Filling.
func fillingLot(t *testing.T, raw *rawlot.RawLot, o *order.Order, lineID kernel.UUID, units int) *packlot.PackagedLot {
	t.Helper()
	orderID := o.ID()
	pl, err := packlot.NewPackagedLot(kernel.NewUUID(), packlot.NewInput{
		RawLotID:     raw.ID(),
		PackFormatID: "VIAL-2ML",
		FillVolume:   kernel.MustVolume("1.5"),
		QtyPlanned:   units,
		FrozenSpec:   o.FrozenSpec(),
		OrderID:      &orderID,
		OrderLineID:  &lineID,
	}, now)
	require.NoError(t, err)
	require.NoError(t, pl.Advance(now))
	require.Equal(t, packlot.Filling, pl.Status())
	return pl
}

func reserve(t *testing.T, lotID, lineID kernel.UUID, volume string) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(kernel.NewUUID(), lotID, lineID, kernel.MustVolume(volume), now)
	require.NoError(t, err)
	return r
}
