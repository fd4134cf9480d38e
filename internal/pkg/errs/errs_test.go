package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("raw lot", "123")
		assert.Equal(t, "raw lot", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: raw lot 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("raw lot", "123", cause)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: raw lot, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("reason")
		assert.Equal(t, "reason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: reason", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("cell type mismatch")
		err := errs.NewValueIsInvalidErrorWithCause("culture", cause)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: culture (cause: cell type mismatch)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("cycles", 0, 1, 99)
		assert.Equal(t, "cycles", err.ParamName)
		assert.Equal(t, 0, err.Value)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 0 is cycles, min value is 1, max value is 99", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("volume", -5, 0, 100, cause)
		assert.Equal(t,
			"value is invalid: -5 is volume, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("product code")
	assert.Equal(t, "value is required: product code", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("product code", errors.New("empty"))
	assert.Equal(t, "value is required: product code (cause: empty)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("expected 3")
		err := errs.NewVersionIsInvalidError("raw lot", cause)
		assert.Equal(t, "version is invalid: raw lot (cause: expected 3)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithoutCause("raw lot")
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: raw lot", err.Error())
	})
}

func TestPreconditionNotMetError(t *testing.T) {
	t.Run("lists missing obligations", func(t *testing.T) {
		err := errs.NewPreconditionNotMetError("raw lot", "L-1", "qc result STER", "qc result ENDO")
		assert.Equal(t, "precondition not met: raw lot L-1, missing: qc result STER, qc result ENDO", err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionNotMet)
	})

	t.Run("without missing list", func(t *testing.T) {
		err := errs.NewPreconditionNotMetError("packaged lot", "P-1")
		assert.Equal(t, "precondition not met: packaged lot P-1", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewPreconditionNotMetErrorWithCause("raw lot", "L-1", errors.New("status is Open"), "collection")
		assert.Equal(t, "precondition not met: raw lot L-1, missing: collection (cause: status is Open)", err.Error())
	})
}

func TestInsufficientVolumeError(t *testing.T) {
	err := errs.NewInsufficientVolumeError("L-1", "30 mL", "20 mL")
	assert.Equal(t, "insufficient volume: lot L-1, requested 30 mL, available 20 mL", err.Error())
	require.ErrorIs(t, err, errs.ErrInsufficientVolume)
}

func TestStoreFailureError(t *testing.T) {
	t.Run("nil cause yields nil", func(t *testing.T) {
		require.NoError(t, errs.NewStoreFailureError("insert raw lot", nil))
	})

	t.Run("wraps sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewStoreFailureError("insert raw lot", cause)
		require.ErrorIs(t, err, errs.ErrStoreFailure)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "store failure: insert raw lot (cause: connection reset)", err.Error())
	})
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		err      error
		expected errs.Kind
	}{
		{nil, errs.KindNone},
		{errs.NewObjectNotFoundError("lot", "1"), errs.KindNotFound},
		{errs.NewPreconditionNotMetError("lot", "1"), errs.KindPreconditionNotMet},
		{errs.NewInsufficientVolumeError("lot", 2, 1), errs.KindInsufficientVolume},
		{errs.NewVersionIsInvalidErrorWithoutCause("lot"), errs.KindConflict},
		{errs.NewValueIsInvalidError("reason"), errs.KindValidationFailed},
		{errs.NewValueIsRequiredError("reason"), errs.KindValidationFailed},
		{errs.NewValueIsOutOfRangeError("cycles", 0, 1, 2), errs.KindValidationFailed},
		{errs.NewStoreFailureError("get", errors.New("boom")), errs.KindStoreFailure},
		{errors.New("anything else"), errs.KindUnknown},
		{fmt.Errorf("wrapped: %w", errs.NewValueIsRequiredError("x")), errs.KindValidationFailed},
		{errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), errs.KindValidationFailed},
	}

	for _, tc := range testCases {
		t.Run(string(tc.expected), func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.KindOf(tc.err))
		})
	}
}
