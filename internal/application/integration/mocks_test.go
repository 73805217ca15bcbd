package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
)

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, filter store.StoreFilter) ([]store.Store, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]store.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) ListActiveIDs(ctx context.Context) (map[uuid.UUID]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]uuid.UUID), args.Error(1)
}

func (m *MockStoreRepository) SaveEcommerceIntegration(ctx context.Context, rec *integration.EcommerceIntegration) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockStoreRepository) SaveCourierIntegration(ctx context.Context, rec *integration.CourierIntegration) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockStoreRepository) DeleteEcommerceIntegration(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

func (m *MockStoreRepository) DeleteCourierIntegration(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

func (m *MockStoreRepository) FindCourierIntegration(ctx context.Context, id uuid.UUID) (*integration.CourierIntegration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.CourierIntegration), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByRemoteID(ctx context.Context, storeID uuid.UUID, remoteOrderID string) (bool, error) {
	args := m.Called(ctx, storeID, remoteOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CreateIfAbsent(ctx context.Context, order *trade.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order, expected trade.OrderStatus) error {
	return m.Called(ctx, order, expected).Error(0)
}

func (m *MockOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]trade.Order), args.Get(1).(int64), args.Error(2)
}

// MockAdapterFactory is a mock implementation of AdapterFactory
type MockAdapterFactory struct {
	mock.Mock
}

func (m *MockAdapterFactory) EStoreAdapters(records []*integration.EcommerceIntegration) ([]integration.EStoreAdapter, error) {
	args := m.Called(records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.EStoreAdapter), args.Error(1)
}

func (m *MockAdapterFactory) CourierAdapters(records []*integration.CourierIntegration) ([]integration.CourierAdapter, error) {
	args := m.Called(records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.CourierAdapter), args.Error(1)
}

// MockEStoreAdapter mocks the sync half of EStoreAdapter. Calling any
// passthrough method panics on the nil embedded interface.
type MockEStoreAdapter struct {
	integration.EStoreAdapter
	mock.Mock
	record *integration.EcommerceIntegration
}

func (m *MockEStoreAdapter) Provider() integration.ProviderCode {
	return m.record.Provider
}

func (m *MockEStoreAdapter) Integration() *integration.EcommerceIntegration {
	return m.record
}

func (m *MockEStoreAdapter) GetAllProducts(ctx context.Context, actorID, storeID uuid.UUID) (*integration.ProductSyncReport, error) {
	args := m.Called(ctx, actorID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ProductSyncReport), args.Error(1)
}

func (m *MockEStoreAdapter) GetOrders(ctx context.Context, storeID uuid.UUID) (*integration.OrderSyncReport, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderSyncReport), args.Error(1)
}

// MockCourierAdapter mocks Dispatch
type MockCourierAdapter struct {
	integration.CourierAdapter
	mock.Mock
	record *integration.CourierIntegration
}

func (m *MockCourierAdapter) Provider() integration.ProviderCode {
	return m.record.Provider
}

func (m *MockCourierAdapter) Integration() *integration.CourierIntegration {
	return m.record
}

func (m *MockCourierAdapter) Dispatch(ctx context.Context, order *trade.Order) integration.DispatchResult {
	return m.Called(ctx, order).Get(0).(integration.DispatchResult)
}
