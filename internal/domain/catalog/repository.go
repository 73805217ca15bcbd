package catalog

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository persists store products
type ProductRepository interface {
	// FindByStoreAndName returns shared.ErrNotFound when the store has no
	// product with that name
	FindByStoreAndName(ctx context.Context, storeID uuid.UUID, name string) (*Product, error)

	// CreateIfAbsent inserts the product with its tags and assigns the next
	// per-store LocalProductID. If (store, name) already exists nothing is
	// written and false is returned.
	CreateIfAbsent(ctx context.Context, product *Product) (bool, error)

	// Update saves product details and adds any new third-party tags
	Update(ctx context.Context, product *Product) error

	// ListByStore lists non-deleted products of a store
	ListByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
}
