package trade

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	Status *OrderStatus
}

// OrderRepository persists store orders
type OrderRepository interface {
	// FindByIDForStore returns the order if it belongs to the store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Order, error)

	// ExistsByRemoteID checks the (store, remote order id) key
	ExistsByRemoteID(ctx context.Context, storeID uuid.UUID, remoteOrderID string) (bool, error)

	// CreateIfAbsent inserts the order and its lines unless (store, remote order id)
	// already exists. Returns false when nothing was inserted.
	CreateIfAbsent(ctx context.Context, order *Order) (bool, error)

	// UpdateStatus persists status, courier binding and dispatch time, but only
	// if the stored status still equals expected. Returns
	// shared.ErrConcurrencyConflict otherwise.
	UpdateStatus(ctx context.Context, order *Order, expected OrderStatus) error

	// ListByStore lists non-deleted orders of a store
	ListByStore(ctx context.Context, storeID uuid.UUID, filter OrderFilter) ([]Order, int64, error)
}
