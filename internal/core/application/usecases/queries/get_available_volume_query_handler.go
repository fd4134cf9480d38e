package queries

import (
	"context"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAvailableVolumeQueryHandler computes max(0, current - active reservations)
// for one raw lot in a single statement.
type GetAvailableVolumeQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableVolumeQueryHandler(db *gorm.DB) GetAvailableVolumeQueryHandler {
	return GetAvailableVolumeQueryHandler{db: db}
}

func (h GetAvailableVolumeQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableVolumeQuery,
) (GetAvailableVolumeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAvailableVolumeQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.current,
			COALESCE((
				SELECT SUM(r.volume)
				FROM reservations r
				WHERE r.raw_lot_id = l.id AND r.status = ?
			), 0) AS reserved
		FROM raw_lots l
		JOIN containers c ON c.owner_id = l.id
		WHERE l.id = ?
	`, reservation.Active.String(), query.RawLotID().Bytes()).Rows()
	if err != nil {
		return GetAvailableVolumeQueryResponse{}, errs.NewStoreFailureError("get available volume", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetAvailableVolumeQueryResponse{}, errs.NewStoreFailureError("get available volume", err)
		}
		return GetAvailableVolumeQueryResponse{}, errs.NewObjectNotFoundError("raw lot", query.RawLotID())
	}

	var current, reserved decimal.Decimal
	if err = rows.Scan(&current, &reserved); err != nil {
		return GetAvailableVolumeQueryResponse{}, errs.NewStoreFailureError("get available volume", err)
	}

	resp := GetAvailableVolumeQueryResponse{RawLotID: query.RawLotID()}
	if resp.Current, err = kernel.NewVolume(current); err != nil {
		return GetAvailableVolumeQueryResponse{}, err
	}
	if resp.Reserved, err = kernel.NewVolume(reserved); err != nil {
		return GetAvailableVolumeQueryResponse{}, err
	}
	resp.Available = resp.Current.SaturatingSub(resp.Reserved)
	return resp, nil
}
