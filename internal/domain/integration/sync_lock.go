package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSyncLockTTL bounds how long a crashed pull can hold a store's lock
const DefaultSyncLockTTL = 5 * time.Minute

// SyncLock serializes pulls of one store across processes. Acquire returns
// ErrSyncInProgress when the key is already held.
type SyncLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// StoreSyncKey is the lock key for a store's pull
func StoreSyncKey(storeID uuid.UUID) string {
	return "store:" + storeID.String() + ":sync"
}
