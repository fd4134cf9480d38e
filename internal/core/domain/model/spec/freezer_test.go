package spec_test

import (
	"testing"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newCatalog() *spec.StaticCatalog {
	return spec.NewStaticCatalog(
		[]spec.MethodRef{
			{ID: "CENTRIFUGE", Name: "Centrifugation"},
			{ID: "TFF", Name: "Tangential flow filtration"},
			{ID: "LYO", Name: "Lyophilization"},
		},
		[]spec.TestRef{
			{Code: "STERILITY", Name: "Sterility", NormText: "no growth"},
			{Code: "PARTICLES", Name: "Particle count", Unit: "p/mL", NormMin: dec("1e9"), NormMax: dec("1e11")},
			{Code: "ENDOTOXIN", Name: "Endotoxin", Unit: "EU/mL", NormMax: dec("0.5")},
		},
	)
}

func newFreezer(t *testing.T) *spec.Freezer {
	t.Helper()
	f, err := spec.NewFreezer(newCatalog(), kernel.FixedClock(frozenAt))
	require.NoError(t, err)
	return f
}

func TestNewFreezer_RequiresCollaborators(t *testing.T) {
	_, err := spec.NewFreezer(nil, kernel.SystemClock())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = spec.NewFreezer(newCatalog(), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestFreezer_Freeze(t *testing.T) {
	t.Run("copies catalog data in declared order", func(t *testing.T) {
		// Given
		def := spec.Definition{
			ProductCode: "EXO-100",
			Processing: []spec.ProcessingRequirement{
				{Section: spec.SectionRaw, MethodID: "TFF", Cycles: 2, Order: 2},
				{Section: spec.SectionRaw, MethodID: "CENTRIFUGE", Order: 1},
				{Section: spec.SectionPostFill, MethodID: "LYO", Cycles: 1},
			},
			QC: []spec.QCRequirement{
				{Group: spec.QCGroupRaw, Code: "STERILITY", Order: 2},
				{Group: spec.QCGroupRaw, Code: "PARTICLES", Order: 1},
				{Group: spec.QCGroupProduct, Code: "ENDOTOXIN"},
			},
		}

		// When
		frozen, err := newFreezer(t).Freeze(def)

		// Then
		require.NoError(t, err)
		require.NoError(t, frozen.Validate())
		assert.Equal(t, frozenAt, frozen.FrozenAt())

		raw := frozen.Processing(spec.SectionRaw)
		require.Len(t, raw, 2)
		assert.Equal(t, "CENTRIFUGE", raw[0].MethodID)
		assert.Equal(t, 1, raw[0].Cycles, "zero cycles defaults to one")
		assert.Equal(t, "Tangential flow filtration", raw[1].Name)
		assert.Equal(t, 3, frozen.TotalCycles(spec.SectionRaw))

		qc := frozen.QC(spec.QCGroupRaw)
		require.Len(t, qc, 2)
		assert.Equal(t, "PARTICLES", qc[0].Code)
		assert.Equal(t, "STERILITY", qc[1].Code)

		assert.Equal(t, spec.Shape{HasPost: true, HasPostQC: true}, frozen.Shape())
	})

	t.Run("product norm overrides catalog norm", func(t *testing.T) {
		def := spec.Definition{QC: []spec.QCRequirement{
			{Group: spec.QCGroupProduct, Code: "ENDOTOXIN", NormMax: dec("0.2"), NormText: "≤ 0.2 EU/mL"},
		}}

		frozen, err := newFreezer(t).Freeze(def)

		require.NoError(t, err)
		test, ok := frozen.Test(spec.QCGroupProduct, "ENDOTOXIN")
		require.True(t, ok)
		assert.True(t, test.NormMax.Equal(decimal.RequireFromString("0.2")))
		assert.Nil(t, test.NormMin)
		assert.Equal(t, "≤ 0.2 EU/mL", test.NormText)
	})

	t.Run("unknown references are reported together", func(t *testing.T) {
		def := spec.Definition{
			Processing: []spec.ProcessingRequirement{{Section: spec.SectionRaw, MethodID: "NOPE"}},
			QC:         []spec.QCRequirement{{Group: spec.QCGroupRaw, Code: "MISSING"}},
		}

		_, err := newFreezer(t).Freeze(def)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "NOPE")
		assert.Contains(t, err.Error(), "MISSING")
	})

	t.Run("negative cycles are rejected", func(t *testing.T) {
		def := spec.Definition{Processing: []spec.ProcessingRequirement{
			{Section: spec.SectionRaw, MethodID: "TFF", Cycles: -1},
		}}

		_, err := newFreezer(t).Freeze(def)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("duplicate method in one section is rejected", func(t *testing.T) {
		def := spec.Definition{Processing: []spec.ProcessingRequirement{
			{Section: spec.SectionRaw, MethodID: "TFF"},
			{Section: spec.SectionRaw, MethodID: "TFF"},
		}}

		_, err := newFreezer(t).Freeze(def)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty definition yields an empty but valid spec", func(t *testing.T) {
		frozen, err := newFreezer(t).Freeze(spec.Definition{})

		require.NoError(t, err)
		require.NoError(t, frozen.Validate())
		assert.Equal(t, spec.Shape{}, frozen.Shape())
	})
}

func TestFreezer_SnapshotIsIsolatedFromCatalogEdits(t *testing.T) {
	// Given
	norm := decimal.RequireFromString("0.5")
	catalog := spec.NewStaticCatalog(nil, []spec.TestRef{{Code: "ENDOTOXIN", NormMax: &norm}})
	f, err := spec.NewFreezer(catalog, kernel.FixedClock(frozenAt))
	require.NoError(t, err)

	frozen, err := f.Freeze(spec.Definition{QC: []spec.QCRequirement{{Group: spec.QCGroupRaw, Code: "ENDOTOXIN"}}})
	require.NoError(t, err)

	// When
	norm = decimal.RequireFromString("99")
	got := frozen.QC(spec.QCGroupRaw)
	*got[0].NormMax = decimal.RequireFromString("42")

	// Then
	test, _ := frozen.Test(spec.QCGroupRaw, "ENDOTOXIN")
	assert.Equal(t, "0.5", test.NormMax.String())
}

func TestFrozenSpec_ZeroValueIsNotConstructed(t *testing.T) {
	var s spec.FrozenSpec

	assert.ErrorIs(t, s.Validate(), spec.ErrFrozenSpecIsNotConstructed)
}
