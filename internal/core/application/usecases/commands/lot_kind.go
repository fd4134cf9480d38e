package commands

import (
	"context"
	"fmt"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"
)

// LotKind selects the aggregate a recording command targets.
type LotKind string

const (
	LotKindRaw      LotKind = "raw"
	LotKindPackaged LotKind = "packaged"
)

func ParseLotKind(s string) (LotKind, error) {
	switch LotKind(s) {
	case LotKindRaw, LotKindPackaged:
		return LotKind(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("lot kind", fmt.Errorf("%q is not raw or packaged", s))
	}
}

// recorder is the recording surface shared by raw and packaged lots.
type recorder interface {
	RecordStep(id kernel.UUID, in step.Input) (*step.ProcessingStep, error)
	CompleteStep(stepID kernel.UUID, endedAt time.Time, output *kernel.Volume) error
	RecordResult(requestID, resultID kernel.UUID, in qc.ResultInput, now time.Time) (*qc.Result, error)
	RecordDecision(id kernel.UUID, in qc.DecisionInput, now time.Time) (*qc.Decision, error)
}

// updateLot loads the lot of the given kind, applies fn and writes it back.
func updateLot(ctx context.Context, uow UoW, kind LotKind, id kernel.UUID, fn func(recorder) error) error {
	switch kind {
	case LotKindRaw:
		repo := uow.RawLotRepository()
		lot, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = fn(lot); err != nil {
			return err
		}
		return repo.Update(ctx, lot)
	case LotKindPackaged:
		repo := uow.PackagedLotRepository()
		lot, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = fn(lot); err != nil {
			return err
		}
		return repo.Update(ctx, lot)
	default:
		return errs.NewValueIsInvalidErrorWithCause("lot kind", fmt.Errorf("%q is not raw or packaged", kind))
	}
}
