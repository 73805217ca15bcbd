package integration

import (
	"context"

	"github.com/google/uuid"
)

// SnapshotKind names the gateway payload being archived
type SnapshotKind string

const (
	SnapshotProducts SnapshotKind = "products"
	SnapshotOrders   SnapshotKind = "orders"
)

// Snapshot is a raw gateway response body
type Snapshot struct {
	Kind          SnapshotKind
	StoreID       uuid.UUID
	IntegrationID uuid.UUID
	Provider      ProviderCode
	Body          []byte
}

// SnapshotArchiver keeps raw gateway payloads for audit and replay. Archiving
// is best effort; callers log failures and carry on.
type SnapshotArchiver interface {
	Archive(ctx context.Context, snapshot Snapshot) error
}
