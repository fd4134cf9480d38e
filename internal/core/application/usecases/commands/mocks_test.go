package commands_test

import (
	"context"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/order"
	"exoprotrack/internal/core/domain/model/packlot"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/core/domain/model/reservation"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRawLotRepository struct{ mock.Mock }

func (m *MockRawLotRepository) Add(ctx context.Context, lot *rawlot.RawLot) error {
	return m.Called(ctx, lot).Error(0)
}
func (m *MockRawLotRepository) Update(ctx context.Context, lot *rawlot.RawLot) error {
	return m.Called(ctx, lot).Error(0)
}
func (m *MockRawLotRepository) Get(ctx context.Context, id kernel.UUID) (*rawlot.RawLot, error) {
	args := m.Called(ctx, id)
	lot, _ := args.Get(0).(*rawlot.RawLot)
	return lot, args.Error(1)
}
func (m *MockRawLotRepository) FindApproved(ctx context.Context, productCode string) ([]*rawlot.RawLot, error) {
	args := m.Called(ctx, productCode)
	lots, _ := args.Get(0).([]*rawlot.RawLot)
	return lots, args.Error(1)
}

type MockPackagedLotRepository struct{ mock.Mock }

func (m *MockPackagedLotRepository) Add(ctx context.Context, lot *packlot.PackagedLot) error {
	return m.Called(ctx, lot).Error(0)
}
func (m *MockPackagedLotRepository) Update(ctx context.Context, lot *packlot.PackagedLot) error {
	return m.Called(ctx, lot).Error(0)
}
func (m *MockPackagedLotRepository) Get(ctx context.Context, id kernel.UUID) (*packlot.PackagedLot, error) {
	args := m.Called(ctx, id)
	lot, _ := args.Get(0).(*packlot.PackagedLot)
	return lot, args.Error(1)
}
func (m *MockPackagedLotRepository) FindByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*packlot.PackagedLot, error) {
	args := m.Called(ctx, rawLotID)
	lots, _ := args.Get(0).([]*packlot.PackagedLot)
	return lots, args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, r *reservation.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReservationRepository) Update(ctx context.Context, r *reservation.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*reservation.Reservation)
	return r, args.Error(1)
}
func (m *MockReservationRepository) FindActiveByRawLot(ctx context.Context, rawLotID kernel.UUID) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, rawLotID)
	rs, _ := args.Get(0).([]*reservation.Reservation)
	return rs, args.Error(1)
}
func (m *MockReservationRepository) FindActive(ctx context.Context) ([]*reservation.Reservation, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]*reservation.Reservation)
	return rs, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetByLine(ctx context.Context, lineID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, lineID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) Catalog(ctx context.Context) (spec.Catalog, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(spec.Catalog)
	return c, args.Error(1)
}
func (m *MockReferenceRepository) ProductDefinition(ctx context.Context, productCode string) (spec.Definition, error) {
	args := m.Called(ctx, productCode)
	return args.Get(0).(spec.Definition), args.Error(1)
}
func (m *MockReferenceRepository) CultureCellType(ctx context.Context, cultureID kernel.UUID) (string, error) {
	args := m.Called(ctx, cultureID)
	return args.String(0), args.Error(1)
}
func (m *MockReferenceRepository) PackFormat(ctx context.Context, id string) (ports.PackFormat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.PackFormat), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) RawLotRepository() ports.RawLotRepository {
	return m.Called().Get(0).(ports.RawLotRepository)
}
func (m *MockUoW) PackagedLotRepository() ports.PackagedLotRepository {
	return m.Called().Get(0).(ports.PackagedLotRepository)
}
func (m *MockUoW) ReservationRepository() ports.ReservationRepository {
	return m.Called().Get(0).(ports.ReservationRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	return m.Called().Get(0).(ports.ReferenceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

// repos bundles one mock per repository behind a single unit of work.
type repos struct {
	raw          *MockRawLotRepository
	packaged     *MockPackagedLotRepository
	reservations *MockReservationRepository
	orders       *MockOrderRepository
	reference    *MockReferenceRepository
	uow          *MockUoW
	factory      *MockUoWFactory
}

// newRepos wires a factory that hands out the same unit of work for every
// Create call. Begin and Rollback always succeed; Commit is left to the test.
func newRepos() *repos {
	r := &repos{
		raw:          new(MockRawLotRepository),
		packaged:     new(MockPackagedLotRepository),
		reservations: new(MockReservationRepository),
		orders:       new(MockOrderRepository),
		reference:    new(MockReferenceRepository),
		uow:          new(MockUoW),
		factory:      new(MockUoWFactory),
	}
	r.factory.On("Create").Return(r.uow)
	r.uow.On("Begin", mock.Anything).Return(nil)
	r.uow.On("Rollback", mock.Anything).Return(nil)
	r.uow.On("RawLotRepository").Return(r.raw).Maybe()
	r.uow.On("PackagedLotRepository").Return(r.packaged).Maybe()
	r.uow.On("ReservationRepository").Return(r.reservations).Maybe()
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("ReferenceRepository").Return(r.reference).Maybe()
	return r
}

func (r *repos) expectCommit() {
	r.uow.On("Commit", mock.Anything).Return(nil)
}

func (r *repos) assert(t mock.TestingT) {
	r.raw.AssertExpectations(t)
	r.packaged.AssertExpectations(t)
	r.reservations.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.reference.AssertExpectations(t)
	r.uow.AssertExpectations(t)
}
