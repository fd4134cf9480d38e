package spec_test

import (
	"encoding/json"
	"testing"

	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedDocument = `{
  "processing": {
    "raw":  [{"method_id": "CENTRIFUGE", "name": "Centrifugation", "cycles": 1, "order": 1},
             {"method_id": "TFF", "name": "TFF", "cycles": 3, "order": 2}],
    "pre":  [],
    "post": [{"method_id": "LYO", "name": "Lyophilization", "cycles": 1, "order": 1}]
  },
  "qc": {
    "raw":     [{"code": "PARTICLES", "name": "Particle count", "unit": "p/mL", "norm_min": "1000000000"}],
    "preFill": [],
    "product": [{"code": "STERILITY", "name": "Sterility", "norm_text": "no growth"}]
  },
  "frozenAt": "2026-03-01T09:00:00Z"
}`

func TestFromDocument(t *testing.T) {
	t.Run("stored document restores the same snapshot", func(t *testing.T) {
		var doc spec.Document
		require.NoError(t, json.Unmarshal([]byte(storedDocument), &doc))

		frozen, err := spec.FromDocument(doc)

		require.NoError(t, err)
		assert.Equal(t, 4, frozen.TotalCycles(spec.SectionRaw))
		assert.Equal(t, spec.Shape{HasPost: true, HasPostQC: true}, frozen.Shape())
		test, ok := frozen.Test(spec.QCGroupRaw, "PARTICLES")
		require.True(t, ok)
		assert.Equal(t, "1000000000", test.NormMin.String())
		assert.Equal(t, doc, frozen.Document())
	})

	t.Run("zero cycles in storage are corrupt", func(t *testing.T) {
		doc := spec.Document{Processing: spec.ProcessingDocument{
			Raw: []spec.MethodDocument{{MethodID: "TFF", Cycles: 0}},
		}}

		_, err := spec.FromDocument(doc)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("inverted norm bounds are rejected", func(t *testing.T) {
		doc := spec.Document{QC: spec.QCDocument{
			Raw: []spec.TestDocument{{Code: "PH", NormMin: dec("8"), NormMax: dec("6")}},
		}}

		_, err := spec.FromDocument(doc)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("blank identifiers are required", func(t *testing.T) {
		doc := spec.Document{
			Processing: spec.ProcessingDocument{Pre: []spec.MethodDocument{{MethodID: " ", Cycles: 1}}},
			QC:         spec.QCDocument{PreFill: []spec.TestDocument{{Code: ""}}},
		}

		_, err := spec.FromDocument(doc)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "processing.pre[0].method_id")
		assert.Contains(t, err.Error(), "qc.preFill[0].code")
	})
}

func TestQCTest_WithinNorm(t *testing.T) {
	tests := []struct {
		name       string
		test       spec.QCTest
		value      string
		wantWithin bool
		wantOK     bool
	}{
		{name: "no numeric norm", test: spec.QCTest{NormText: "clear"}, value: "1"},
		{name: "inside closed range", test: spec.QCTest{NormMin: dec("6.8"), NormMax: dec("7.4")}, value: "7.4", wantWithin: true, wantOK: true},
		{name: "below min", test: spec.QCTest{NormMin: dec("6.8")}, value: "6.7", wantOK: true},
		{name: "above max", test: spec.QCTest{NormMax: dec("0.5")}, value: "0.51", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			within, ok := tt.test.WithinNorm(*dec(tt.value))
			assert.Equal(t, tt.wantWithin, within)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseSectionAndGroup(t *testing.T) {
	s, err := spec.ParseSection("post")
	require.NoError(t, err)
	assert.Equal(t, spec.SectionPostFill, s)

	g, err := spec.ParseQCGroup("preFill")
	require.NoError(t, err)
	assert.Equal(t, spec.QCGroupPreFill, g)

	_, err = spec.ParseSection("middle")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = spec.ParseQCGroup("final")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
