package packlot_test

import (
	"testing"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func emptySpec(t *testing.T) spec.FrozenSpec {
	t.Helper()
	s, err := spec.FromDocument(spec.Document{FrozenAt: t0})
	require.NoError(t, err)
	return s
}

func fullSpec(t *testing.T) spec.FrozenSpec {
	t.Helper()
	s, err := spec.FromDocument(spec.Document{
		Processing: spec.ProcessingDocument{
			Pre:  []spec.MethodDocument{{MethodID: "STERILE-FILTER", Cycles: 1}},
			Post: []spec.MethodDocument{{MethodID: "LYO", Cycles: 2}},
		},
		QC: spec.QCDocument{
			PreFill: []spec.TestDocument{{Code: "BIOBURDEN"}},
			Product: []spec.TestDocument{{Code: "STERILITY"}, {Code: "ENDOTOXIN"}},
		},
		FrozenAt: t0,
	})
	require.NoError(t, err)
	return s
}

func newLot(t *testing.T, frozen spec.FrozenSpec, planned int) *packlot.PackagedLot {
	t.Helper()
	lot, err := packlot.NewPackagedLot(kernel.NewUUID(), packlot.NewInput{
		RawLotID:     kernel.NewUUID(),
		PackFormatID: "VIAL-2ML",
		FillVolume:   kernel.MustVolume("2"),
		QtyPlanned:   planned,
		FrozenSpec:   frozen,
		OrderID:      ptr(kernel.NewUUID()),
		OrderLineID:  ptr(kernel.NewUUID()),
	}, t0)
	require.NoError(t, err)
	return lot
}

func doneStep(method string, occ int) step.Input {
	return step.Input{MethodID: method, Occurrence: occ, StartedAt: t0, EndedAt: ptr(t0.Add(time.Hour)), Operator: "op"}
}

func latestRequestID(t *testing.T, lot *packlot.PackagedLot) kernel.UUID {
	t.Helper()
	reqs := lot.QCRequests()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1].ID()
}

func pass(t *testing.T, lot *packlot.PackagedLot, codes ...string) {
	t.Helper()
	reqID := latestRequestID(t, lot)
	for _, code := range codes {
		_, err := lot.RecordResult(reqID, kernel.NewUUID(), qc.ResultInput{Code: code, Verdict: qc.Pass}, t0)
		require.NoError(t, err)
	}
}

func decide(t *testing.T, lot *packlot.PackagedLot, v qc.Verdict, at time.Time) {
	t.Helper()
	shelf := 0
	if v == qc.Approved {
		shelf = 365
	}
	_, err := lot.RecordDecision(kernel.NewUUID(), qc.DecisionInput{Verdict: v, ShelfLifeDays: shelf}, at)
	require.NoError(t, err)
}

func TestPath_ElidesEmptyGroups(t *testing.T) {
	tests := []struct {
		name  string
		shape spec.Shape
		want  []packlot.Status
	}{
		{
			name:  "nothing optional",
			shape: spec.Shape{},
			want:  []packlot.Status{packlot.Planned, packlot.Filling, packlot.Filled, packlot.Released},
		},
		{
			name:  "pre-fill processing without QC has no QA gate",
			shape: spec.Shape{HasPre: true},
			want:  []packlot.Status{packlot.Planned, packlot.Processing, packlot.Filling, packlot.Filled, packlot.Released},
		},
		{
			name:  "post-fill QC brings its QA gate",
			shape: spec.Shape{HasPostQC: true},
			want: []packlot.Status{
				packlot.Planned, packlot.Filling, packlot.Filled,
				packlot.PostFillQCPending, packlot.PostFillQCCompleted, packlot.PostFillQAPending, packlot.Released,
			},
		},
		{
			name:  "everything",
			shape: spec.Shape{HasPre: true, HasPreQC: true, HasPost: true, HasPostQC: true},
			want: []packlot.Status{
				packlot.Planned, packlot.Processing,
				packlot.PreFillQCPending, packlot.PreFillQCCompleted, packlot.PreFillQAPending,
				packlot.Filling, packlot.Filled, packlot.PostProcessing,
				packlot.PostFillQCPending, packlot.PostFillQCCompleted, packlot.PostFillQAPending, packlot.Released,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, packlot.Path(tt.shape))
		})
	}
}

func TestPackagedLot_EmptySpecSkipsEveryOptionalStage(t *testing.T) {
	// Given
	lot := newLot(t, emptySpec(t), 100)

	// When
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.Filling, lot.Status())
	require.NoError(t, lot.CompleteFilling(100, t0))
	require.Equal(t, packlot.Filled, lot.Status())
	require.NoError(t, lot.Advance(t0))

	// Then
	assert.Equal(t, packlot.Released, lot.Status())
	assert.Empty(t, lot.QCRequests())
	assert.False(t, lot.CanAdvance())
}

func TestPackagedLot_FullPath(t *testing.T) {
	lot := newLot(t, fullSpec(t), 50)

	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.Processing, lot.Status())

	err := lot.Advance(t0)
	require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
	assert.Contains(t, err.Error(), "STERILE-FILTER#1")

	_, err = lot.RecordStep(kernel.NewUUID(), doneStep("STERILE-FILTER", 1))
	require.NoError(t, err)
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PreFillQCPending, lot.Status())

	require.ErrorIs(t, lot.Advance(t0), errs.ErrPreconditionNotMet)
	pass(t, lot, "BIOBURDEN")
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PreFillQCCompleted, lot.Status())
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PreFillQAPending, lot.Status())

	require.ErrorIs(t, lot.Advance(t0), errs.ErrPreconditionNotMet)
	decide(t, lot, qc.Approved, t0)
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.Filling, lot.Status())

	require.ErrorIs(t, lot.Advance(t0), errs.ErrPreconditionNotMet)
	require.NoError(t, lot.CompleteFilling(48, t0))
	require.Equal(t, packlot.Filled, lot.Status())
	assert.Equal(t, 2, lot.Shortfall())
	assert.Equal(t, "96", lot.ConsumedVolume().String())
	assert.Equal(t, "100", lot.RequiredVolume().String())

	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PostProcessing, lot.Status())
	for occ := 1; occ <= 2; occ++ {
		_, err = lot.RecordStep(kernel.NewUUID(), doneStep("LYO", occ))
		require.NoError(t, err)
	}
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PostFillQCPending, lot.Status())

	pass(t, lot, "STERILITY", "ENDOTOXIN")
	require.NoError(t, lot.Advance(t0))
	require.NoError(t, lot.Advance(t0))
	require.Equal(t, packlot.PostFillQAPending, lot.Status())
	decide(t, lot, qc.Approved, t0)
	require.NoError(t, lot.Advance(t0))

	assert.Equal(t, packlot.Released, lot.Status())
	require.Len(t, lot.QCRequests(), 2)
	for _, req := range lot.QCRequests() {
		assert.Equal(t, qc.RequestCompleted, req.Status())
	}
}

func TestPackagedLot_QAGate(t *testing.T) {
	postQCOnly := func(t *testing.T) *packlot.PackagedLot {
		s, err := spec.FromDocument(spec.Document{QC: spec.QCDocument{Product: []spec.TestDocument{{Code: "STERILITY"}}}})
		require.NoError(t, err)
		lot := newLot(t, s, 10)
		require.NoError(t, lot.Advance(t0))
		require.NoError(t, lot.CompleteFilling(10, t0))
		require.NoError(t, lot.Advance(t0))
		return lot
	}

	t.Run("rejection is terminal", func(t *testing.T) {
		lot := postQCOnly(t)
		reqID := latestRequestID(t, lot)
		_, err := lot.RecordResult(reqID, kernel.NewUUID(), qc.ResultInput{Code: "STERILITY", Verdict: qc.Fail}, t0)
		require.NoError(t, err)
		require.NoError(t, lot.Advance(t0))
		require.NoError(t, lot.Advance(t0))

		decide(t, lot, qc.Rejected, t0)
		require.NoError(t, lot.Advance(t0))

		assert.Equal(t, packlot.Rejected, lot.Status())
		assert.True(t, lot.Status().IsTerminal())
		_, err = lot.RecordDecision(kernel.NewUUID(), qc.DecisionInput{Verdict: qc.Approved, ShelfLifeDays: 1}, t0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("approval over failure needs a reason", func(t *testing.T) {
		lot := postQCOnly(t)
		reqID := latestRequestID(t, lot)
		_, err := lot.RecordResult(reqID, kernel.NewUUID(), qc.ResultInput{Code: "STERILITY", Verdict: qc.Fail}, t0)
		require.NoError(t, err)
		require.NoError(t, lot.Advance(t0))
		require.NoError(t, lot.Advance(t0))

		_, err = lot.RecordDecision(kernel.NewUUID(), qc.DecisionInput{Verdict: qc.Approved, ShelfLifeDays: 30}, t0)

		assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
	})

	t.Run("held lot resumes to release on approval", func(t *testing.T) {
		lot := postQCOnly(t)
		pass(t, lot, "STERILITY")
		require.NoError(t, lot.Advance(t0))
		require.NoError(t, lot.Advance(t0))

		decide(t, lot, qc.OnHold, t0)
		require.NoError(t, lot.Advance(t0))
		require.Equal(t, packlot.OnHold, lot.Status())
		require.ErrorIs(t, lot.Advance(t0), errs.ErrPreconditionNotMet)

		decide(t, lot, qc.Approved, t0.Add(time.Hour))
		require.NoError(t, lot.Advance(t0.Add(time.Hour)))

		assert.Equal(t, packlot.Released, lot.Status())
	})
}

func TestPackagedLot_HeldAtPreFillResumesToFilling(t *testing.T) {
	s, err := spec.FromDocument(spec.Document{QC: spec.QCDocument{PreFill: []spec.TestDocument{{Code: "BIOBURDEN"}}}})
	require.NoError(t, err)
	lot := newLot(t, s, 10)
	require.NoError(t, lot.Advance(t0))
	pass(t, lot, "BIOBURDEN")
	require.NoError(t, lot.Advance(t0))
	require.NoError(t, lot.Advance(t0))
	decide(t, lot, qc.OnHold, t0)
	require.NoError(t, lot.Advance(t0))

	decide(t, lot, qc.Approved, t0.Add(time.Minute))
	require.NoError(t, lot.Advance(t0))

	assert.Equal(t, packlot.Filling, lot.Status())
}

func TestPackagedLot_CompleteFilling(t *testing.T) {
	t.Run("quantity must be at least one", func(t *testing.T) {
		lot := newLot(t, emptySpec(t), 10)
		require.NoError(t, lot.Advance(t0))

		require.ErrorIs(t, lot.CompleteFilling(0, t0), errs.ErrValueIsOutOfRange)
		assert.Equal(t, packlot.Filling, lot.Status())
		assert.False(t, lot.HasProduced())
	})

	t.Run("over-production is rejected", func(t *testing.T) {
		lot := newLot(t, emptySpec(t), 10)
		require.NoError(t, lot.Advance(t0))

		require.ErrorIs(t, lot.CompleteFilling(11, t0), errs.ErrValueIsOutOfRange)
	})

	t.Run("only while filling", func(t *testing.T) {
		lot := newLot(t, emptySpec(t), 10)

		require.ErrorIs(t, lot.CompleteFilling(5, t0), errs.ErrValueIsInvalid)
	})
}

func TestPackagedLot_RecordShipment(t *testing.T) {
	lot := newLot(t, emptySpec(t), 100)
	require.NoError(t, lot.Advance(t0))
	require.NoError(t, lot.CompleteFilling(60, t0))
	require.NoError(t, lot.Advance(t0))

	_, err := lot.RecordShipment(kernel.NewUUID(), 40, "DN-1", t0)
	require.NoError(t, err)
	assert.Equal(t, packlot.PartiallyShipped, lot.Status())

	_, err = lot.RecordShipment(kernel.NewUUID(), 21, "DN-2", t0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 40, lot.QtyShipped())

	_, err = lot.RecordShipment(kernel.NewUUID(), 20, "DN-2", t0)
	require.NoError(t, err)
	assert.Equal(t, packlot.Shipped, lot.Status())
	assert.True(t, lot.Container().Current().IsZero())

	_, err = lot.RecordShipment(kernel.NewUUID(), 1, "DN-3", t0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPackagedLot_RecordStepOnlyInProcessingStages(t *testing.T) {
	lot := newLot(t, fullSpec(t), 10)

	_, err := lot.RecordStep(kernel.NewUUID(), doneStep("STERILE-FILTER", 1))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.NoError(t, lot.Advance(t0))
	post := doneStep("LYO", 1)
	post.Section = spec.SectionPostFill
	_, err = lot.RecordStep(kernel.NewUUID(), post)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPackagedLot_Validation(t *testing.T) {
	_, err := packlot.NewPackagedLot(kernel.NewUUID(), packlot.NewInput{
		QtyPlanned:  0,
		FrozenSpec:  emptySpec(t),
		OrderLineID: ptr(kernel.NewUUID()),
	}, t0)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitions_GraphSizePerShape(t *testing.T) {
	// linear edges, QA fan-out, hold exits, shipping edges
	assert.Len(t, packlot.Transitions(spec.Shape{}), 3+4)
	full := spec.Shape{HasPre: true, HasPreQC: true, HasPost: true, HasPostQC: true}
	assert.Len(t, packlot.Transitions(full), 9+2*3+3+4)
}
