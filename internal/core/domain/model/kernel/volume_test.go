package kernel_test

import (
	"testing"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVolume(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "zero", in: "0"},
		{name: "fractional", in: "12.5"},
		{name: "negative", in: "-0.1", wantErr: errs.ErrValueIsOutOfRange},
		{name: "garbage", in: "ten", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := kernel.VolumeFromString(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, v.Decimal().Equal(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestVolume_Arithmetic(t *testing.T) {
	a := kernel.MustVolume("10.25")
	b := kernel.MustVolume("4.25")

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, "14.5", a.Add(b).String())
	})

	t.Run("sub", func(t *testing.T) {
		res, err := a.Sub(b)
		require.NoError(t, err)
		assert.Equal(t, "6", res.String())
	})

	t.Run("sub below zero is rejected", func(t *testing.T) {
		_, err := b.Sub(a)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("saturating sub clamps at zero", func(t *testing.T) {
		assert.True(t, b.SaturatingSub(a).IsZero())
		assert.Equal(t, "6", a.SaturatingSub(b).String())
	})

	t.Run("mul", func(t *testing.T) {
		res, err := b.Mul(3)
		require.NoError(t, err)
		assert.Equal(t, "12.75", res.String())

		_, err = b.Mul(-1)
		require.Error(t, err)
	})

	t.Run("compare", func(t *testing.T) {
		assert.True(t, a.GreaterThan(b))
		assert.True(t, b.LessThan(a))
		assert.Equal(t, 0, a.Cmp(kernel.MustVolume("10.250")))
		assert.True(t, a.Equal(kernel.MustVolume("10.250")))
	})

	t.Run("sum", func(t *testing.T) {
		assert.Equal(t, "14.5", kernel.SumVolumes(a, b).String())
		assert.True(t, kernel.SumVolumes().IsZero())
	})
}

func TestVolume_ZeroValueIsEmpty(t *testing.T) {
	var v kernel.Volume

	assert.True(t, v.IsZero())
	assert.True(t, v.Equal(kernel.ZeroVolume))
}
