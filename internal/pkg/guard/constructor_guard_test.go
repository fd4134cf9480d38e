package guard_test

import (
	"errors"
	"testing"

	"exoprotrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a domain value.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Culture struct {
		id       string
		cellType string
		guard    guard.ConstructorGuard
	}

	errCultureNotConstructed := errors.New("Culture must be created via NewCulture")

	newCulture := func(id, cellType string) (Culture, error) {
		if id == "" {
			return Culture{}, errors.New("culture id is required")
		}
		if cellType == "" {
			return Culture{}, errors.New("cell type is required")
		}
		return Culture{id: id, cellType: cellType, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		culture, err := newCulture("CUL-1", "MSC")

		require.NoError(t, err)
		require.NoError(t, culture.guard.Validate(errCultureNotConstructed))
		assert.Equal(t, "MSC", culture.cellType)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var culture Culture

		err := culture.guard.Validate(errCultureNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errCultureNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newCulture("", "MSC")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "culture id is required")
	})
}

func TestConstructorGuard_CopyByValue(t *testing.T) {
	g := guard.NewConstructorGuard()
	guardCopy := g

	require.NoError(t, g.Validate(nil))
	require.NoError(t, guardCopy.Validate(nil))
}

func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("Validate_Success", func(b *testing.B) {
		g := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		for range b.N {
			_ = g.Validate(err)
		}
	})

	b.Run("Validate_ZeroValue", func(b *testing.B) {
		var g guard.ConstructorGuard
		err := errors.New("not constructed")
		for range b.N {
			_ = g.Validate(err)
		}
	})
}
