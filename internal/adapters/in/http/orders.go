package http

import (
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}

	orderID := kernel.NewUUID()
	lines := make([]order.LineInput, 0, len(req.Lines))
	lineIDs := make([]uuid.UUID, 0, len(req.Lines))
	for _, l := range req.Lines {
		id := kernel.NewUUID()
		lines = append(lines, order.LineInput{ID: id, PackFormatID: l.PackFormatID, QtyUnits: l.QtyUnits})
		lineIDs = append(lineIDs, id.Bytes())
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, req.ProductCode, lines)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedOrder{ID: orderID.Bytes(), LineIDs: lineIDs})
}

func (s *Server) AllocateOrderLine(c echo.Context) error {
	lineID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req AllocateLineRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	rawLotID, err := bodyID("rawLotId", req.RawLotID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAllocateOrderLineCommand(lineID, rawLotID)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.AllocateOrderLine.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
