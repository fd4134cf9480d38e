package cmd

import (
	"log/slog"

	httpin "exoprotrack/internal/adapters/in/http"
	"exoprotrack/internal/adapters/out/postgres"
	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/application/usecases/queries"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock(),
	}
}

// commandUoWFactory narrows the postgres factory to what command handlers need.
func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	return commands.NewReleaseExpiredReservationsCommandHandler(c.commandUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetLotChecklistQueryHandler() (queries.GetLotChecklistQueryHandler, error) {
	return queries.NewGetLotChecklistQueryHandler(c.uowFactory, c.clock)
}

// HTTPHandlers wires every use case the HTTP server dispatches to.
func (c *CompositionRoot) HTTPHandlers() (httpin.Handlers, error) {
	f := c.commandUoWFactory()

	checklist, err := c.CreateGetLotChecklistQueryHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}

	return httpin.Handlers{
		CreateRawLot:       commands.NewCreateRawLotCommandHandler(f, c.clock),
		RecordCollection:   commands.NewRecordCollectionCommandHandler(f),
		AdvanceRawLot:      commands.NewAdvanceRawLotCommandHandler(f, c.clock),
		RecordStep:         commands.NewRecordProcessingStepCommandHandler(f),
		CompleteStep:       commands.NewCompleteProcessingStepCommandHandler(f),
		RecordResult:       commands.NewRecordQcResultCommandHandler(f, c.clock),
		RecordDecision:     commands.NewRecordQaDecisionCommandHandler(f, c.clock),
		CreatePackagedLot:  commands.NewCreatePackagedLotCommandHandler(f, c.clock),
		AdvancePackagedLot: commands.NewAdvancePackagedLotCommandHandler(f, c.clock),
		CompleteFilling:    commands.NewCompleteFillingCommandHandler(f, c.clock),
		RecordShipment:     commands.NewRecordShipmentCommandHandler(f, c.clock),
		CreateOrder:        commands.NewCreateOrderCommandHandler(f, c.clock),
		AllocateOrderLine:  commands.NewAllocateOrderLineCommandHandler(f),
		Reserve:            commands.NewReserveVolumeCommandHandler(f, c.clock),
		CancelReservation:  commands.NewCancelReservationCommandHandler(f, c.clock),
		ConsumeReservation: commands.NewConsumeReservationCommandHandler(f, c.clock),

		ReleaseExpired:  c.CreateReleaseExpiredReservationsCommandHandler(),
		AvailableVolume: queries.NewGetAvailableVolumeQueryHandler(c.gormDB),
		FEFOCandidates:  queries.NewGetFEFOCandidatesQueryHandler(c.gormDB, c.clock),
		LotChecklist:    checklist,
	}, nil
}

func (c *CompositionRoot) JobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReleaseExpiredReservationsCommandHandler(), c.cfg.SweepSchedule, logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
