package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Volumes travel as decimal strings ("12.5"); numbers are accepted too.

type CreateRawLotRequest struct {
	ProductCode       string          `json:"productCode"`
	Mode              string          `json:"mode"`
	NominalVolume     decimal.Decimal `json:"nominalVolume"`
	SourceOrderLineID *uuid.UUID      `json:"sourceOrderLineId,omitempty"`
}

type RecordCollectionRequest struct {
	Volume      decimal.Decimal `json:"volume"`
	CultureID   uuid.UUID       `json:"cultureId"`
	MediaSpecID string          `json:"mediaSpecId"`
	CollectedAt time.Time       `json:"collectedAt"`
	Operator    string          `json:"operator"`
}

type RecordStepRequest struct {
	MethodID   string           `json:"methodId"`
	Occurrence int              `json:"occurrence"`
	Section    string           `json:"section"`
	InputQty   *decimal.Decimal `json:"inputQty,omitempty"`
	OutputQty  *decimal.Decimal `json:"outputQty,omitempty"`
	StartedAt  time.Time        `json:"startedAt"`
	EndedAt    *time.Time       `json:"endedAt,omitempty"`
	Operator   string           `json:"operator"`
	Notes      string           `json:"notes,omitempty"`
}

type CompleteStepRequest struct {
	EndedAt   time.Time        `json:"endedAt"`
	OutputQty *decimal.Decimal `json:"outputQty,omitempty"`
}

type RecordResultRequest struct {
	Code       string           `json:"code"`
	Value      *decimal.Decimal `json:"value,omitempty"`
	Text       string           `json:"text,omitempty"`
	Verdict    string           `json:"verdict,omitempty"`
	RecordedBy string           `json:"recordedBy"`
}

type RecordDecisionRequest struct {
	Gate          string `json:"gate"`
	Verdict       string `json:"verdict"`
	ShelfLifeDays int    `json:"shelfLifeDays,omitempty"`
	Reason        string `json:"reason,omitempty"`
	DecidedBy     string `json:"decidedBy"`
}

type CreatePackagedLotRequest struct {
	RawLotID     uuid.UUID  `json:"rawLotId"`
	PackFormatID string     `json:"packFormatId"`
	QtyPlanned   int        `json:"qtyPlanned"`
	OrderLineID  *uuid.UUID `json:"orderLineId,omitempty"`
}

type CompleteFillingRequest struct {
	QtyProduced    int    `json:"qtyProduced"`
	Reconciliation string `json:"reconciliation,omitempty"`
}

type RecordShipmentRequest struct {
	Qty       int    `json:"qty"`
	Reference string `json:"reference,omitempty"`
}

type OrderLineRequest struct {
	PackFormatID string `json:"packFormatId"`
	QtyUnits     int    `json:"qtyUnits"`
}

type CreateOrderRequest struct {
	ProductCode string             `json:"productCode"`
	Lines       []OrderLineRequest `json:"lines"`
}

type AllocateLineRequest struct {
	RawLotID uuid.UUID `json:"rawLotId"`
}

type ReserveRequest struct {
	RawLotID    uuid.UUID       `json:"rawLotId"`
	OrderLineID uuid.UUID       `json:"orderLineId"`
	Volume      decimal.Decimal `json:"volume"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type CreatedOrder struct {
	ID      uuid.UUID   `json:"id"`
	LineIDs []uuid.UUID `json:"lineIds"`
}

type AvailableVolume struct {
	RawLotID  uuid.UUID `json:"rawLotId"`
	Current   string    `json:"current"`
	Reserved  string    `json:"reserved"`
	Available string    `json:"available"`
}

type FEFOCandidate struct {
	RawLotID    uuid.UUID `json:"rawLotId"`
	ProductCode string    `json:"productCode"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Current     string    `json:"current"`
	Available   string    `json:"available"`
}

type ChecklistItem struct {
	Key       string `json:"key"`
	Name      string `json:"name,omitempty"`
	Satisfied bool   `json:"satisfied"`
}

type ChecklistStage struct {
	Stage        string          `json:"stage"`
	AllSatisfied bool            `json:"allSatisfied"`
	Items        []ChecklistItem `json:"items"`
}

type OpenQCRequest struct {
	ID    uuid.UUID `json:"id"`
	Group string    `json:"group"`
}

type Checklist struct {
	LotID      uuid.UUID        `json:"lotId"`
	Kind       string           `json:"kind"`
	Status     string           `json:"status"`
	Version    int              `json:"version"`
	CanAdvance bool             `json:"canAdvance"`
	NextStatus string           `json:"nextStatus,omitempty"`
	Blocker    string           `json:"blocker,omitempty"`
	Stages     []ChecklistStage `json:"stages"`
	OpenQC     []OpenQCRequest  `json:"openQc,omitempty"`
}

type ReleasedReservations struct {
	Released int `json:"released"`
}
