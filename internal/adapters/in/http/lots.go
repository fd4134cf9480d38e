package http

import (
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/application/usecases/queries"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Routes under /lots/:kind/:id serve both raw and packaged lots.

func lotPath(c echo.Context) (commands.LotKind, kernel.UUID, error) {
	kind, err := commands.ParseLotKind(c.Param("kind"))
	if err != nil {
		return "", kernel.UUID{}, err
	}
	lotID, err := pathID(c, "id")
	if err != nil {
		return "", kernel.UUID{}, err
	}
	return kind, lotID, nil
}

func optionalVolume(name string, d *decimal.Decimal) (*kernel.Volume, error) {
	if d == nil {
		return nil, nil
	}
	v, err := kernel.NewVolume(*d)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &v, nil
}

func (s *Server) RecordStep(c echo.Context) error {
	kind, lotID, err := lotPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordStepRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}

	section, err := spec.ParseSection(req.Section)
	if err != nil {
		return s.fail(c, err)
	}
	inputQty, err := optionalVolume("inputQty", req.InputQty)
	if err != nil {
		return s.fail(c, err)
	}
	outputQty, err := optionalVolume("outputQty", req.OutputQty)
	if err != nil {
		return s.fail(c, err)
	}

	stepID := kernel.NewUUID()
	cmd, err := commands.NewRecordProcessingStepCommand(kind, lotID, stepID, step.Input{
		MethodID:   req.MethodID,
		Occurrence: req.Occurrence,
		Section:    section,
		InputQty:   inputQty,
		OutputQty:  outputQty,
		StartedAt:  req.StartedAt,
		EndedAt:    req.EndedAt,
		Operator:   req.Operator,
		Notes:      req.Notes,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RecordStep.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, stepID)
}

func (s *Server) CompleteStep(c echo.Context) error {
	kind, lotID, err := lotPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	stepID, err := pathID(c, "stepId")
	if err != nil {
		return s.fail(c, err)
	}
	var req CompleteStepRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	outputQty, err := optionalVolume("outputQty", req.OutputQty)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteProcessingStepCommand(kind, lotID, stepID, req.EndedAt, outputQty)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CompleteStep.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RecordResult(c echo.Context) error {
	kind, lotID, err := lotPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordResultRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	verdict, err := qc.ParsePassFail(req.Verdict)
	if err != nil {
		return s.fail(c, err)
	}

	resultID := kernel.NewUUID()
	cmd, err := commands.NewRecordQcResultCommand(kind, lotID, requestID, resultID, qc.ResultInput{
		Code:       req.Code,
		Value:      req.Value,
		Text:       req.Text,
		Verdict:    verdict,
		RecordedBy: req.RecordedBy,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RecordResult.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, resultID)
}

func (s *Server) RecordDecision(c echo.Context) error {
	kind, lotID, err := lotPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordDecisionRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	gate, err := spec.ParseQCGroup(req.Gate)
	if err != nil {
		return s.fail(c, err)
	}
	verdict, err := qc.ParseVerdict(req.Verdict)
	if err != nil {
		return s.fail(c, err)
	}

	decisionID := kernel.NewUUID()
	cmd, err := commands.NewRecordQaDecisionCommand(kind, lotID, decisionID, qc.DecisionInput{
		Gate:          gate,
		Verdict:       verdict,
		ShelfLifeDays: req.ShelfLifeDays,
		Reason:        req.Reason,
		DecidedBy:     req.DecidedBy,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RecordDecision.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, decisionID)
}

func (s *Server) GetChecklist(c echo.Context) error {
	lotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetLotChecklistQuery(c.Param("kind"), lotID)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.h.LotChecklist.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}

	out := Checklist{
		LotID:      res.LotID.Bytes(),
		Kind:       string(res.Kind),
		Status:     res.Status,
		Version:    res.Version,
		CanAdvance: res.CanAdvance,
		NextStatus: res.NextStatus,
		Blocker:    res.Blocker,
		Stages:     make([]ChecklistStage, 0, len(res.Stages)),
	}
	for _, st := range res.Stages {
		items := make([]ChecklistItem, 0, len(st.Items))
		for _, it := range st.Items {
			items = append(items, ChecklistItem{Key: it.Key, Name: it.Name, Satisfied: it.Satisfied})
		}
		out.Stages = append(out.Stages, ChecklistStage{Stage: st.Stage, AllSatisfied: st.AllSatisfied, Items: items})
	}
	for _, r := range res.OpenQC {
		out.OpenQC = append(out.OpenQC, OpenQCRequest{ID: r.ID.Bytes(), Group: r.Group})
	}
	return c.JSON(http.StatusOK, out)
}
