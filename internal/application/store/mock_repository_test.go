package store

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

var _ store.StoreRepository = (*MockStoreRepository)(nil)
