package http

import (
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/application/usecases/queries"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreateRawLot(c echo.Context) error {
	var req CreateRawLotRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}

	mode, err := rawlot.ParseMode(req.Mode)
	if err != nil {
		return s.fail(c, err)
	}
	volume, err := kernel.NewVolume(req.NominalVolume)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("nominalVolume", err))
	}
	sourceLine, err := optionalBodyID("sourceOrderLineId", req.SourceOrderLineID)
	if err != nil {
		return s.fail(c, err)
	}

	lotID := kernel.NewUUID()
	cmd, err := commands.NewCreateRawLotCommand(lotID, req.ProductCode, mode, volume, sourceLine)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateRawLot.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, lotID)
}

func (s *Server) RecordCollection(c echo.Context) error {
	lotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordCollectionRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}

	volume, err := kernel.NewVolume(req.Volume)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("volume", err))
	}
	cultureID, err := bodyID("cultureId", req.CultureID)
	if err != nil {
		return s.fail(c, err)
	}

	eventID := kernel.NewUUID()
	cmd, err := commands.NewRecordCollectionCommand(lotID, eventID, volume, cultureID, req.MediaSpecID, req.CollectedAt, req.Operator)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RecordCollection.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, eventID)
}

func (s *Server) AdvanceRawLot(c echo.Context) error {
	return s.advance(c, s.h.AdvanceRawLot)
}

func (s *Server) advance(c echo.Context, h CommandHandler[commands.AdvanceLotCommand]) error {
	lotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAdvanceLotCommand(lotID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetAvailableVolume(c echo.Context) error {
	lotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	q, err := queries.NewGetAvailableVolumeQuery(lotID)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.h.AvailableVolume.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, AvailableVolume{
		RawLotID:  res.RawLotID.Bytes(),
		Current:   res.Current.String(),
		Reserved:  res.Reserved.String(),
		Available: res.Available.String(),
	})
}

func (s *Server) GetFEFOCandidates(c echo.Context) error {
	q := queries.NewGetFEFOCandidatesQuery(c.QueryParam("productCode"))
	res, err := s.h.FEFOCandidates.Handle(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]FEFOCandidate, 0, len(res))
	for _, r := range res {
		out = append(out, FEFOCandidate{
			RawLotID:    r.RawLotID.Bytes(),
			ProductCode: r.ProductCode,
			ExpiresAt:   r.ExpiresAt,
			Current:     r.Current.String(),
			Available:   r.Available.String(),
		})
	}
	return c.JSON(http.StatusOK, out)
}
