// Package queries contains read-only operations. Handlers read straight from
// the database or through repositories and never change state.
package queries

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/guard"
)

var ErrGetAvailableVolumeQueryIsNotConstructed = errors.New(
	"GetAvailableVolumeQuery must be created via NewGetAvailableVolumeQuery constructor",
)

// GetAvailableVolumeQuery asks how much of a raw lot is free to reserve.
//
// Example:
//
//	query, err := NewGetAvailableVolumeQuery(lotID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	fmt.Printf("%s ml free of %s ml\n", resp.Available, resp.Current)
type GetAvailableVolumeQuery struct {
	rawLotID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetAvailableVolumeQuery(rawLotID kernel.UUID) (GetAvailableVolumeQuery, error) {
	if err := rawLotID.Validate(); err != nil {
		return GetAvailableVolumeQuery{}, err
	}
	return GetAvailableVolumeQuery{rawLotID: rawLotID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableVolumeQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableVolumeQueryIsNotConstructed)
}

func (q GetAvailableVolumeQuery) RawLotID() kernel.UUID {
	return q.rawLotID
}

// GetAvailableVolumeQueryResponse reports the ledger of one raw lot.
// Available is never negative.
type GetAvailableVolumeQueryResponse struct {
	RawLotID  kernel.UUID
	Current   kernel.Volume
	Reserved  kernel.Volume
	Available kernel.Volume
}
