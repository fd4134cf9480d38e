package qc_test

import (
	"testing"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opened = time.Date(2026, 5, 10, 7, 30, 0, 0, time.UTC)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var (
	particles = spec.QCTest{Code: "PARTICLES", NormMin: dec("1e9"), NormMax: dec("1e11")}
	sterility = spec.QCTest{Code: "STERILITY", NormText: "no growth"}
)

func newRequest(t *testing.T) *qc.Request {
	t.Helper()
	r, err := qc.NewRequest(kernel.NewUUID(), spec.QCGroupRaw, opened)
	require.NoError(t, err)
	return r
}

func TestRequest_RecordResult(t *testing.T) {
	t.Run("explicit verdict wins over norm", func(t *testing.T) {
		r := newRequest(t)

		res, err := r.RecordResult(kernel.NewUUID(), particles,
			qc.ResultInput{Code: "PARTICLES", Value: dec("5"), Verdict: qc.Pass}, opened)

		require.NoError(t, err)
		assert.Equal(t, qc.Pass, res.Verdict())
	})

	t.Run("numeric value is evaluated against the frozen norm", func(t *testing.T) {
		r := newRequest(t)

		in, err := r.RecordResult(kernel.NewUUID(), particles, qc.ResultInput{Code: "PARTICLES", Value: dec("2e10")}, opened)
		require.NoError(t, err)
		out, err := r.RecordResult(kernel.NewUUID(), particles, qc.ResultInput{Code: "PARTICLES", Value: dec("2e11")}, opened)
		require.NoError(t, err)

		assert.Equal(t, qc.Pass, in.Verdict())
		assert.Equal(t, qc.Fail, out.Verdict())
	})

	t.Run("verdict is required without a numeric norm", func(t *testing.T) {
		r := newRequest(t)

		_, err := r.RecordResult(kernel.NewUUID(), sterility, qc.ResultInput{Code: "STERILITY", Text: "clear"}, opened)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Empty(t, r.Results())
	})

	t.Run("code must match the test", func(t *testing.T) {
		r := newRequest(t)

		_, err := r.RecordResult(kernel.NewUUID(), sterility, qc.ResultInput{Code: "PARTICLES", Verdict: qc.Pass}, opened)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("completed request is closed", func(t *testing.T) {
		r := newRequest(t)
		require.NoError(t, r.Complete(opened.Add(time.Hour)))

		_, err := r.RecordResult(kernel.NewUUID(), sterility, qc.ResultInput{Code: "STERILITY", Verdict: qc.Pass}, opened)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, qc.RequestCompleted, r.Status())
		require.Error(t, r.Complete(opened))
	})
}

func TestRequest_LatestIsAuthoritative(t *testing.T) {
	// Given
	r := newRequest(t)
	_, err := r.RecordResult(kernel.NewUUID(), sterility, qc.ResultInput{Code: "STERILITY", Verdict: qc.Fail}, opened)
	require.NoError(t, err)
	_, err = r.RecordResult(kernel.NewUUID(), sterility, qc.ResultInput{Code: "STERILITY", Verdict: qc.Pass}, opened.Add(time.Hour))
	require.NoError(t, err)
	_, err = r.RecordResult(kernel.NewUUID(), particles, qc.ResultInput{Code: "PARTICLES", Verdict: qc.Inconclusive}, opened)
	require.NoError(t, err)

	// When
	latest, ok := r.Latest("STERILITY")

	// Then
	require.True(t, ok)
	assert.Equal(t, qc.Pass, latest.Verdict())
	assert.Equal(t, map[string]bool{"STERILITY": true, "PARTICLES": true}, r.RecordedCodes())
	assert.Equal(t, []string{"PARTICLES", "ENDOTOXIN"}, r.NotPassing([]string{"STERILITY", "PARTICLES", "ENDOTOXIN"}))
}

func TestLatestRequest(t *testing.T) {
	first, err := qc.NewRequest(kernel.NewUUID(), spec.QCGroupProduct, opened)
	require.NoError(t, err)
	second, err := qc.NewRequest(kernel.NewUUID(), spec.QCGroupProduct, opened.Add(time.Hour))
	require.NoError(t, err)
	other, err := qc.NewRequest(kernel.NewUUID(), spec.QCGroupPreFill, opened.Add(2*time.Hour))
	require.NoError(t, err)

	got, ok := qc.LatestRequest([]*qc.Request{second, other, first}, spec.QCGroupProduct)

	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = qc.LatestRequest(nil, spec.QCGroupRaw)
	assert.False(t, ok)
}
