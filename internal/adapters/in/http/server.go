// Package http exposes the lot workflow over a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/application/usecases/queries"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CommandHandler is satisfied by every command handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by query handlers and by command handlers that
// report a result.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Handlers bundles the use cases the server dispatches to.
type Handlers struct {
	CreateRawLot       CommandHandler[commands.CreateRawLotCommand]
	RecordCollection   CommandHandler[commands.RecordCollectionCommand]
	AdvanceRawLot      CommandHandler[commands.AdvanceLotCommand]
	RecordStep         CommandHandler[commands.RecordProcessingStepCommand]
	CompleteStep       CommandHandler[commands.CompleteProcessingStepCommand]
	RecordResult       CommandHandler[commands.RecordQcResultCommand]
	RecordDecision     CommandHandler[commands.RecordQaDecisionCommand]
	CreatePackagedLot  CommandHandler[commands.CreatePackagedLotCommand]
	AdvancePackagedLot CommandHandler[commands.AdvanceLotCommand]
	CompleteFilling    CommandHandler[commands.CompleteFillingCommand]
	RecordShipment     CommandHandler[commands.RecordShipmentCommand]
	CreateOrder        CommandHandler[commands.CreateOrderCommand]
	AllocateOrderLine  CommandHandler[commands.AllocateOrderLineCommand]
	Reserve            CommandHandler[commands.ReserveVolumeCommand]
	CancelReservation  CommandHandler[commands.CloseReservationCommand]
	ConsumeReservation CommandHandler[commands.CloseReservationCommand]

	ReleaseExpired  QueryHandler[commands.ReleaseExpiredReservationsCommand, int]
	AvailableVolume QueryHandler[queries.GetAvailableVolumeQuery, queries.GetAvailableVolumeQueryResponse]
	FEFOCandidates  QueryHandler[queries.GetFEFOCandidatesQuery, []queries.FEFOCandidate]
	LotChecklist    QueryHandler[queries.GetLotChecklistQuery, queries.GetLotChecklistQueryResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// Register mounts every route on e, together with the API description at
// /api/v1/openapi.json and the Swagger UI under /swagger/.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})

	api.POST("/raw-lots", s.CreateRawLot)
	api.POST("/raw-lots/:id/collections", s.RecordCollection)
	api.POST("/raw-lots/:id/advance", s.AdvanceRawLot)
	api.GET("/raw-lots/:id/available-volume", s.GetAvailableVolume)
	api.GET("/fefo-candidates", s.GetFEFOCandidates)

	api.POST("/lots/:kind/:id/steps", s.RecordStep)
	api.POST("/lots/:kind/:id/steps/:stepId/complete", s.CompleteStep)
	api.POST("/lots/:kind/:id/qc-requests/:requestId/results", s.RecordResult)
	api.POST("/lots/:kind/:id/decisions", s.RecordDecision)
	api.GET("/lots/:kind/:id/checklist", s.GetChecklist)

	api.POST("/packaged-lots", s.CreatePackagedLot)
	api.POST("/packaged-lots/:id/advance", s.AdvancePackagedLot)
	api.POST("/packaged-lots/:id/complete-filling", s.CompleteFilling)
	api.POST("/packaged-lots/:id/shipments", s.RecordShipment)

	api.POST("/orders", s.CreateOrder)
	api.POST("/order-lines/:id/allocate", s.AllocateOrderLine)

	api.POST("/reservations", s.Reserve)
	api.POST("/reservations/release-expired", s.ReleaseExpiredReservations)
	api.POST("/reservations/:id/cancel", s.CancelReservation)
	api.POST("/reservations/:id/consume", s.ConsumeReservation)

	return nil
}

// pathID binds a UUID path parameter the way generated oapi-codegen servers do.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return bodyID(name, id)
}

func bodyID(name string, id uuid.UUID) (kernel.UUID, error) {
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return k, nil
}

func optionalBodyID(name string, id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := bodyID(name, *id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func created(c echo.Context, id kernel.UUID) error {
	return c.JSON(http.StatusCreated, Created{ID: id.Bytes()})
}
