package queries

import (
	"context"
	"fmt"
	"time"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/obligation"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/services"
	"exoprotrack/internal/core/ports"
	"exoprotrack/internal/pkg/errs"
)

// GetLotChecklistQueryHandler loads the lot through its repository and
// evaluates the transition Advance would take without applying it. A
// packaged lot about to enter Filling is also checked against its raw lot's
// usability and coverable volume.
type GetLotChecklistQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	ledger     services.ReservationLedger
	clock      kernel.Clock
}

func NewGetLotChecklistQueryHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) (GetLotChecklistQueryHandler, error) {
	if uowFactory == nil {
		return GetLotChecklistQueryHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if clock == nil {
		return GetLotChecklistQueryHandler{}, errs.NewValueIsRequiredError("clock")
	}
	return GetLotChecklistQueryHandler{
		uowFactory: uowFactory,
		ledger:     services.NewReservationLedger(),
		clock:      clock,
	}, nil
}

func (h GetLotChecklistQueryHandler) Handle(
	ctx context.Context,
	query GetLotChecklistQuery,
) (GetLotChecklistQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLotChecklistQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	switch query.Kind() {
	case commands.LotKindRaw:
		lot, err := uow.RawLotRepository().Get(ctx, query.LotID())
		if err != nil {
			return GetLotChecklistQueryResponse{}, err
		}
		return rawChecklist(lot), nil
	case commands.LotKindPackaged:
		lot, err := uow.PackagedLotRepository().Get(ctx, query.LotID())
		if err != nil {
			return GetLotChecklistQueryResponse{}, err
		}
		resp := packagedChecklist(lot)
		if resp.NextStatus == packlot.Filling.String() {
			err = h.admitFilling(ctx, uow, lot, h.clock.Now())
			switch errs.KindOf(err) {
			case errs.KindNone:
			case errs.KindPreconditionNotMet, errs.KindInsufficientVolume, errs.KindNotFound:
				resp.CanAdvance = false
				resp.Blocker = err.Error()
			default:
				return GetLotChecklistQueryResponse{}, err
			}
		}
		return resp, nil
	default:
		return GetLotChecklistQueryResponse{}, errs.NewValueIsInvalidErrorWithCause("lot kind",
			fmt.Errorf("%q is not raw or packaged", query.Kind()))
	}
}

func (h GetLotChecklistQueryHandler) admitFilling(
	ctx context.Context,
	uow ports.UnitOfWork,
	lot *packlot.PackagedLot,
	now time.Time,
) error {
	raw, err := uow.RawLotRepository().Get(ctx, lot.RawLotID())
	if err != nil {
		return err
	}
	reservations, err := uow.ReservationRepository().FindActiveByRawLot(ctx, raw.ID())
	if err != nil {
		return err
	}
	return h.ledger.AdmitFilling(raw, lot.OrderLineID(), lot.RequiredVolume(), reservations, now)
}

func rawChecklist(lot *rawlot.RawLot) GetLotChecklistQueryResponse {
	resp := GetLotChecklistQueryResponse{
		LotID:   lot.ID(),
		Kind:    commands.LotKindRaw,
		Status:  lot.Status().String(),
		Version: lot.Version(),
	}
	resp.Stages = appendStage(resp.Stages, "processing."+spec.SectionRaw.String(), lot.ProcessingChecklist())
	resp.Stages = appendStage(resp.Stages, "qc."+spec.QCGroupRaw.String(), lot.QCChecklist())
	resp.OpenQC = openRequests(lot.QCRequests())

	if next, err := lot.NextStatus(); err != nil {
		resp.Blocker = err.Error()
	} else {
		resp.CanAdvance = true
		resp.NextStatus = next.String()
	}
	return resp
}

func packagedChecklist(lot *packlot.PackagedLot) GetLotChecklistQueryResponse {
	resp := GetLotChecklistQueryResponse{
		LotID:   lot.ID(),
		Kind:    commands.LotKindPackaged,
		Status:  lot.Status().String(),
		Version: lot.Version(),
	}
	resp.Stages = appendStage(resp.Stages, "processing."+spec.SectionPreFill.String(), lot.ProcessingChecklist(spec.SectionPreFill))
	resp.Stages = appendStage(resp.Stages, "qc."+spec.QCGroupPreFill.String(), lot.QCChecklist(spec.QCGroupPreFill))
	resp.Stages = appendStage(resp.Stages, "processing."+spec.SectionPostFill.String(), lot.ProcessingChecklist(spec.SectionPostFill))
	resp.Stages = appendStage(resp.Stages, "qc."+spec.QCGroupProduct.String(), lot.QCChecklist(spec.QCGroupProduct))
	resp.OpenQC = openRequests(lot.QCRequests())

	if next, err := lot.NextStatus(); err != nil {
		resp.Blocker = err.Error()
	} else {
		resp.CanAdvance = true
		resp.NextStatus = next.String()
	}
	return resp
}

func appendStage(stages []ChecklistStage, name string, list obligation.Checklist) []ChecklistStage {
	if list.IsEmpty() {
		return stages
	}
	items := make([]ChecklistItem, 0, list.Len())
	for _, o := range list.Obligations() {
		items = append(items, ChecklistItem{Key: o.Key(), Name: o.Name, Satisfied: o.Satisfied})
	}
	return append(stages, ChecklistStage{Stage: name, Items: items, AllSatisfied: list.AllSatisfied()})
}

func openRequests(requests []*qc.Request) []OpenQCRequest {
	var out []OpenQCRequest
	for _, r := range requests {
		if r.Status() == qc.RequestOpened {
			out = append(out, OpenQCRequest{ID: r.ID(), Group: r.Group().String()})
		}
	}
	return out
}
