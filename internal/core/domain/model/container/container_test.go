package container_test

import (
	"testing"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBag(t *testing.T, nominal string) *container.Container {
	t.Helper()
	c, err := container.NewContainer(kernel.NewUUID(), kernel.NewUUID(), container.OwnerRawLot, kernel.MustVolume(nominal))
	require.NoError(t, err)
	return c
}

func TestNewContainer(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := newBag(t, "500")

		require.NoError(t, c.Validate())
		assert.True(t, c.Current().IsZero())
		assert.Equal(t, container.StatusEmpty, c.Status())
		assert.Equal(t, "500", c.Headroom().String())
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := container.NewContainer(kernel.UUID{}, kernel.NewUUID(), "crate", kernel.ZeroVolume)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c *container.Container
		assert.ErrorIs(t, c.Validate(), container.ErrContainerIsNotConstructed)
	})
}

func TestContainer_Fill(t *testing.T) {
	t.Run("up to nominal", func(t *testing.T) {
		c := newBag(t, "500")

		require.NoError(t, c.Fill(kernel.MustVolume("200")))
		require.NoError(t, c.Fill(kernel.MustVolume("300")))

		assert.Equal(t, "500", c.Current().String())
		assert.Equal(t, container.StatusFilled, c.Status())
	})

	t.Run("overflow leaves volume unchanged", func(t *testing.T) {
		c := newBag(t, "500")
		require.NoError(t, c.Fill(kernel.MustVolume("450")))

		err := c.Fill(kernel.MustVolume("50.5"))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
		assert.Equal(t, "450", c.Current().String())
	})

	t.Run("zero fill is rejected", func(t *testing.T) {
		c := newBag(t, "500")
		require.ErrorIs(t, c.Fill(kernel.ZeroVolume), errs.ErrValueIsInvalid)
	})
}

func TestContainer_Draw(t *testing.T) {
	c := newBag(t, "100")
	require.NoError(t, c.Fill(kernel.MustVolume("80")))

	err := c.Draw(kernel.MustVolume("90"))
	require.ErrorIs(t, err, errs.ErrInsufficientVolume)
	assert.Equal(t, "80", c.Current().String())

	require.NoError(t, c.Draw(kernel.MustVolume("80")))
	assert.True(t, c.Current().IsZero())
	assert.Equal(t, container.StatusEmpty, c.Status())
}

func TestRestoreContainer_RejectsOverfilledRow(t *testing.T) {
	_, err := container.RestoreContainer(kernel.NewUUID(), kernel.NewUUID(), container.OwnerPackagedLot,
		kernel.MustVolume("10"), kernel.MustVolume("11"), container.StatusFilled)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
