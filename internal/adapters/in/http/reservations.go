package http

import (
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) Reserve(c echo.Context) error {
	var req ReserveRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	rawLotID, err := bodyID("rawLotId", req.RawLotID)
	if err != nil {
		return s.fail(c, err)
	}
	orderLineID, err := bodyID("orderLineId", req.OrderLineID)
	if err != nil {
		return s.fail(c, err)
	}
	volume, err := kernel.NewVolume(req.Volume)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("volume", err))
	}

	reservationID := kernel.NewUUID()
	cmd, err := commands.NewReserveVolumeCommand(reservationID, rawLotID, orderLineID, volume)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.Reserve.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return created(c, reservationID)
}

func (s *Server) CancelReservation(c echo.Context) error {
	var req CancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err.Error())
	}
	return s.close(c, s.h.CancelReservation, req.Reason)
}

func (s *Server) ConsumeReservation(c echo.Context) error {
	return s.close(c, s.h.ConsumeReservation, "")
}

func (s *Server) close(c echo.Context, h CommandHandler[commands.CloseReservationCommand], reason string) error {
	reservationID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCloseReservationCommand(reservationID, reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err := h.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ReleaseExpiredReservations(c echo.Context) error {
	n, err := s.h.ReleaseExpired.Handle(c.Request().Context(), commands.NewReleaseExpiredReservationsCommand())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ReleasedReservations{Released: n})
}
