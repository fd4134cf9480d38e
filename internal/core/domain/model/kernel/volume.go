package kernel

import (
	"errors"
	"fmt"

	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Volume is an exact non-negative quantity held in a container: millilitres
// for raw lots, units for packaged lots. The zero value is a valid empty volume.
type Volume struct {
	amount decimal.Decimal
}

// ZeroVolume is the empty volume.
var ZeroVolume = Volume{}

// NewVolume returns a Volume for v. Negative quantities are rejected.
func NewVolume(v decimal.Decimal) (Volume, error) {
	if v.IsNegative() {
		return Volume{}, errs.NewValueIsOutOfRangeError("volume", v.String(), 0, "∞")
	}
	return Volume{amount: v}, nil
}

// VolumeFromString parses a decimal literal such as "12.5".
func VolumeFromString(s string) (Volume, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Volume{}, errs.NewValueIsInvalidErrorWithCause("volume", err)
	}
	return NewVolume(d)
}

// VolumeFromInt is a convenience for whole quantities such as unit counts.
func VolumeFromInt(n int64) (Volume, error) {
	return NewVolume(decimal.NewFromInt(n))
}

// MustVolume panics on negative input; intended for literals in tests and tables.
func MustVolume(s string) Volume {
	v, err := VolumeFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Volume) Decimal() decimal.Decimal {
	return v.amount
}

func (v Volume) IsZero() bool {
	return v.amount.IsZero()
}

func (v Volume) Add(other Volume) Volume {
	return Volume{amount: v.amount.Add(other.amount)}
}

// Sub returns v - other, or an error if the result would be negative.
func (v Volume) Sub(other Volume) (Volume, error) {
	res := v.amount.Sub(other.amount)
	if res.IsNegative() {
		return Volume{}, errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("cannot subtract %s from %s", other, v))
	}
	return Volume{amount: res}, nil
}

// SaturatingSub returns max(0, v - other).
func (v Volume) SaturatingSub(other Volume) Volume {
	res := v.amount.Sub(other.amount)
	if res.IsNegative() {
		return Volume{}
	}
	return Volume{amount: res}
}

// Mul scales the volume by a non-negative whole factor.
func (v Volume) Mul(n int) (Volume, error) {
	if n < 0 {
		return Volume{}, errors.New("volume multiplier must not be negative")
	}
	return Volume{amount: v.amount.Mul(decimal.NewFromInt(int64(n)))}, nil
}

func (v Volume) Cmp(other Volume) int {
	return v.amount.Cmp(other.amount)
}

func (v Volume) GreaterThan(other Volume) bool {
	return v.amount.GreaterThan(other.amount)
}

func (v Volume) LessThan(other Volume) bool {
	return v.amount.LessThan(other.amount)
}

func (v Volume) Equal(other Volume) bool {
	return v.amount.Equal(other.amount)
}

func (v Volume) String() string {
	return v.amount.String()
}

// SumVolumes adds every volume in vs.
func SumVolumes(vs ...Volume) Volume {
	total := ZeroVolume
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}
