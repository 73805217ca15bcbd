// Package cache provides the store sync lock backends.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
)

// holder represents a held lock with expiration
type holder struct {
	token     string
	expiresAt time.Time
}

// InMemorySyncLock implements integration.SyncLock using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySyncLock struct {
	mu        sync.Mutex
	holders   map[string]holder
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySyncLock creates a new in-memory lock
// It starts a background goroutine to clean up expired holders
func NewInMemorySyncLock() *InMemorySyncLock {
	l := &InMemorySyncLock{
		holders:  make(map[string]holder),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Acquire takes key for ttl. An expired holder is replaced.
func (l *InMemorySyncLock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if h, exists := l.holders[key]; exists && time.Now().Before(h.expiresAt) {
		return nil, integration.ErrSyncInProgress
	}

	token := uuid.NewString()
	l.holders[key] = holder{token: token, expiresAt: time.Now().Add(ttl)}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, token) })
	}, nil
}

// release drops key only if token still holds it
func (l *InMemorySyncLock) release(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, exists := l.holders[key]; exists && h.token == token {
		delete(l.holders, key)
	}
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (l *InMemorySyncLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired holders
func (l *InMemorySyncLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *InMemorySyncLock) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, h := range l.holders {
		if now.After(h.expiresAt) {
			delete(l.holders, key)
		}
	}
}

// Size returns the number of held keys (for testing/monitoring)
func (l *InMemorySyncLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.holders)
}

// Ensure InMemorySyncLock implements SyncLock
var _ integration.SyncLock = (*InMemorySyncLock)(nil)
