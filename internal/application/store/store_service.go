// Package store holds the store and integration record use cases.
package store

import (
	"context"
	"errors"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultIntegrations are the records provisioned with every new store
type DefaultIntegrations struct {
	EStoreEndpoint  string
	CourierEndpoint string
}

// StoreService handles store lifecycle operations
type StoreService struct {
	repo     store.StoreRepository
	defaults DefaultIntegrations
	logger   *zap.Logger
}

// NewStoreService creates a new StoreService
func NewStoreService(repo store.StoreRepository, defaults DefaultIntegrations, logger *zap.Logger) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{repo: repo, defaults: defaults, logger: logger}
}

// Create creates a store owned by ownerID together with its default
// DUMMY_STORE and DUMMY_COURIER integrations
func (s *StoreService) Create(ctx context.Context, ownerID uuid.UUID, req CreateStoreRequest) (*StoreResponse, error) {
	st, err := store.NewStore(req.Name, ownerID)
	if err != nil {
		return nil, err
	}

	estore, err := integration.NewEcommerceIntegration(st.ID,
		integration.ProviderDummyStore.DisplayName(), integration.ProviderDummyStore,
		"", s.defaults.EStoreEndpoint, "")
	if err != nil {
		return nil, err
	}
	if err := st.AddEcommerceIntegration(estore); err != nil {
		return nil, err
	}

	courier, err := integration.NewCourierIntegration(st.ID,
		integration.ProviderDummyCourier.DisplayName(), integration.ProviderDummyCourier,
		"", s.defaults.CourierEndpoint, "")
	if err != nil {
		return nil, err
	}
	if err := st.AddCourierIntegration(courier); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Store created",
		zap.String("store_id", st.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	resp := ToStoreResponse(st)
	return &resp, nil
}

// List returns the caller's stores
func (s *StoreService) List(ctx context.Context, ownerID uuid.UUID, filter StoreListFilter) (shared.Paginated[StoreListResponse], error) {
	f := filter.toDomain(ownerID)
	stores, total, err := s.repo.List(ctx, f)
	if err != nil {
		return shared.Paginated[StoreListResponse]{}, err
	}
	return shared.NewPaginated(ToStoreListResponses(stores), total, f.Page, f.PageSize), nil
}

// Authorize loads a store and checks that userID owns it. A store owned by
// someone else is reported as not found.
func (s *StoreService) Authorize(ctx context.Context, storeID, userID uuid.UUID) (*store.Store, error) {
	return LoadOwned(ctx, s.repo, storeID, userID)
}

// Get returns a store with its integrations
func (s *StoreService) Get(ctx context.Context, storeID, userID uuid.UUID) (*StoreResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToStoreResponse(st)
	return &resp, nil
}

// Rename changes the store name
func (s *StoreService) Rename(ctx context.Context, storeID, userID uuid.UUID, req RenameStoreRequest) (*StoreResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	if err := st.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	resp := ToStoreResponse(st)
	return &resp, nil
}

// Delete soft-deletes the store. Its orders and products are left in place.
func (s *StoreService) Delete(ctx context.Context, storeID, userID uuid.UUID) error {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return err
	}
	if err := st.SoftDelete(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return err
	}
	s.logger.Info("Store deleted", zap.String("store_id", storeID.String()))
	return nil
}

// LoadOwned loads a non-deleted store owned by userID. A nil userID skips
// the ownership check.
func LoadOwned(ctx context.Context, repo store.StoreRepository, storeID, userID uuid.UUID) (*store.Store, error) {
	st, err := repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Store")
		}
		return nil, err
	}
	if userID != uuid.Nil && !st.IsOwnedBy(userID) {
		return nil, shared.NewNotFoundError("Store")
	}
	return st, nil
}
