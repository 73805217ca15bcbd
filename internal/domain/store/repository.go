package store

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// StoreFilter narrows store listings
type StoreFilter struct {
	shared.Filter
	OwnerID uuid.UUID
	// Name is a case-insensitive substring match
	Name string
}

// StoreRepository persists stores and the integration records they own
type StoreRepository interface {
	// Create inserts the store and its integration records in one transaction
	Create(ctx context.Context, s *Store) error

	// FindByID loads a non-deleted store with integrations in position order
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// List returns non-deleted stores without their integrations
	List(ctx context.Context, filter StoreFilter) ([]Store, int64, error)

	// Update saves name and soft-delete state
	Update(ctx context.Context, s *Store) error

	// ListActiveIDs returns the ids and owners of all non-deleted stores
	ListActiveIDs(ctx context.Context) (map[uuid.UUID]uuid.UUID, error)

	SaveEcommerceIntegration(ctx context.Context, rec *integration.EcommerceIntegration) error
	SaveCourierIntegration(ctx context.Context, rec *integration.CourierIntegration) error
	DeleteEcommerceIntegration(ctx context.Context, storeID, id uuid.UUID) error
	DeleteCourierIntegration(ctx context.Context, storeID, id uuid.UUID) error

	// FindCourierIntegration loads a courier record by id regardless of store
	FindCourierIntegration(ctx context.Context, id uuid.UUID) (*integration.CourierIntegration, error)
}
