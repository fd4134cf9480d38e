package http

import (
	"net/http"

	"exoprotrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// statusOf maps an error kind to its HTTP status.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidationFailed:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindPreconditionNotMet, errs.KindInsufficientVolume:
		return http.StatusUnprocessableEntity
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Store and unknown failures are logged
// and their message is not exposed.
func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		msg = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Kind: string(kind), Message: msg})
}

func (s *Server) badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    string(errs.KindValidationFailed),
		Message: msg,
	})
}
