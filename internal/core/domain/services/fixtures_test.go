package services_test

import (
	"testing"
	"time"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/core/domain/model/spec"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func emptySpec(t *testing.T) spec.FrozenSpec {
	t.Helper()
	s, err := spec.FromDocument(spec.Document{FrozenAt: now})
	require.NoError(t, err)
	return s
}

type lotOpts struct {
	status    rawlot.Status
	current   string
	createdAt time.Time
	decidedAt time.Time
	shelfLife int
}

func restoreLot(t *testing.T, o lotOpts) *rawlot.RawLot {
	t.Helper()
	if o.status == rawlot.Unknown {
		o.status = rawlot.Approved
	}
	if o.current == "" {
		o.current = "100"
	}
	if o.decidedAt.IsZero() {
		o.decidedAt = now.AddDate(0, 0, -1)
	}
	if o.shelfLife == 0 {
		o.shelfLife = 30
	}

	id := kernel.NewUUID()
	c, err := container.RestoreContainer(kernel.NewUUID(), id, container.OwnerRawLot,
		kernel.MustVolume("1000"), kernel.MustVolume(o.current), container.StatusFilled)
	require.NoError(t, err)

	var decisions []*qc.Decision
	if o.status == rawlot.Approved {
		d, err := qc.NewDecision(kernel.NewUUID(), qc.DecisionInput{
			Gate: spec.QCGroupRaw, Verdict: qc.Approved, ShelfLifeDays: o.shelfLife,
		}, o.decidedAt)
		require.NoError(t, err)
		decisions = append(decisions, d)
	}

	lot, err := rawlot.RestoreRawLot(rawlot.RestoreInput{
		ID:          id,
		ProductCode: "EXO-100",
		Mode:        rawlot.ModeStockBuild,
		Status:      o.status,
		FrozenSpec:  emptySpec(t),
		Container:   c,
		Decisions:   decisions,
		CreatedAt:   o.createdAt,
	})
	require.NoError(t, err)
	return lot
}

func reserve(t *testing.T, lotID, lineID kernel.UUID, volume string) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(kernel.NewUUID(), lotID, lineID, kernel.MustVolume(volume), now)
	require.NoError(t, err)
	return r
}
