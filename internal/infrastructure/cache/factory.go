package cache

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// SyncLockFactory creates sync locks based on configuration
type SyncLockFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SyncLockFactoryOption is a functional option for configuring the factory
type SyncLockFactoryOption func(*SyncLockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory lock when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSyncLockFactory creates a new factory
func NewSyncLockFactory(cfg config.RedisConfig, opts ...SyncLockFactoryOption) *SyncLockFactory {
	f := &SyncLockFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisLock creates a Redis-based sync lock
func (f *SyncLockFactory) CreateRedisLock() (*RedisSyncLock, error) {
	lock, err := NewRedisSyncLock(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis sync lock: %w", err)
	}
	return lock, nil
}

// CreateLock tries Redis first and falls back to an in-memory lock when
// allowed. The returned closer releases the backend.
// WARNING: In-memory locks do not serialize pulls across process instances.
func (f *SyncLockFactory) CreateLock() (integration.SyncLock, io.Closer, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory sync lock")
		l := NewInMemorySyncLock()
		return l, l, nil
	}

	lock, err := f.CreateRedisLock()
	if err == nil {
		f.logger.Info("using Redis sync lock")
		return lock, lock, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("Redis required for sync lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory sync lock. "+
		"Concurrent pulls on other instances will not be serialized.",
		zap.Error(err),
	)
	l := NewInMemorySyncLock()
	return l, l, nil
}
