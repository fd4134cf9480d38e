package http

import (
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

func (s *Server) CreatePackagedLot(c echo.Context) error {
	var req CreatePackagedLotRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	rawLotID, err := bodyID("rawLotId", req.RawLotID)
	if err != nil {
		return s.fail(c, err)
	}
	orderLineID, err := optionalBodyID("orderLineId", req.OrderLineID)
	if err != nil {
		return s.fail(c, err)
	}

	packLotID := kernel.NewUUID()
	cmd, err := commands.NewCreatePackagedLotCommand(packLotID, rawLotID, req.PackFormatID, req.QtyPlanned, orderLineID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreatePackagedLot.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, packLotID)
}

func (s *Server) AdvancePackagedLot(c echo.Context) error {
	return s.advance(c, s.h.AdvancePackagedLot)
}

// CompleteFilling pre-allocates ids for a possible remainder order so the
// command stays deterministic.
func (s *Server) CompleteFilling(c echo.Context) error {
	packLotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req CompleteFillingRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	reconciliation, err := services.ParseReconciliation(req.Reconciliation)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteFillingCommand(packLotID, req.QtyProduced, reconciliation, kernel.NewUUID(), kernel.NewUUID())
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CompleteFilling.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RecordShipment(c echo.Context) error {
	packLotID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req RecordShipmentRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewRecordShipmentCommand(packLotID, shipmentID, req.Qty, req.Reference)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RecordShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, shipmentID)
}
