package queries

import (
	"context"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetFEFOCandidatesQueryHandler ranks usable raw lots by expiry in the
// database. Ties keep creation order, then id order, so the ranking is total.
type GetFEFOCandidatesQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetFEFOCandidatesQueryHandler(db *gorm.DB, clock kernel.Clock) GetFEFOCandidatesQueryHandler {
	return GetFEFOCandidatesQueryHandler{db: db, clock: clock}
}

func (h GetFEFOCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetFEFOCandidatesQuery,
) ([]FEFOCandidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			l.id,
			l.product_code,
			l.expires_at,
			l.created_at,
			c.current,
			COALESCE(r.reserved, 0) AS reserved
		FROM raw_lots l
		JOIN containers c ON c.owner_id = l.id
		LEFT JOIN (
			SELECT raw_lot_id, SUM(volume) AS reserved
			FROM reservations
			WHERE status = ?
			GROUP BY raw_lot_id
		) r ON r.raw_lot_id = l.id
		WHERE l.status = ? AND l.expires_at >= ?`
	args := []any{reservation.Active.String(), rawlot.Approved.String(), h.clock.Now()}
	if query.ProductCode() != "" {
		sql += ` AND l.product_code = ?`
		args = append(args, query.ProductCode())
	}
	sql += ` ORDER BY l.expires_at, l.created_at, l.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewStoreFailureError("get fefo candidates", err)
	}
	defer rows.Close()

	candidates := make([]FEFOCandidate, 0)
	for rows.Next() {
		var (
			id                uuid.UUID
			productCode       string
			expiresAt         time.Time
			createdAt         time.Time
			current, reserved decimal.Decimal
		)
		if err = rows.Scan(&id, &productCode, &expiresAt, &createdAt, &current, &reserved); err != nil {
			return nil, errs.NewStoreFailureError("get fefo candidates", err)
		}

		lotID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		cur, volErr := kernel.NewVolume(current)
		if volErr != nil {
			return nil, volErr
		}
		res, volErr := kernel.NewVolume(reserved)
		if volErr != nil {
			return nil, volErr
		}

		candidates = append(candidates, FEFOCandidate{
			RawLotID:    lotID,
			ProductCode: productCode,
			ExpiresAt:   expiresAt,
			CreatedAt:   createdAt,
			Current:     cur,
			Available:   cur.SaturatingSub(res),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreFailureError("get fefo candidates", err)
	}

	return candidates, nil
}
