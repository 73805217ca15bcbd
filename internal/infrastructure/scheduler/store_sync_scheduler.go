// Package scheduler runs periodic store pulls on a bounded worker pool.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// StoreSource lists the stores to sync, keyed by store ID with the owner as value
type StoreSource interface {
	ListActiveIDs(ctx context.Context) (map[uuid.UUID]uuid.UUID, error)
}

// StoreSyncer pulls one store
type StoreSyncer interface {
	SyncStore(ctx context.Context, storeID, ownerID uuid.UUID) (SyncSummary, error)
}

// SyncFunc adapts a function to StoreSyncer
type SyncFunc func(ctx context.Context, storeID, ownerID uuid.UUID) (SyncSummary, error)

// SyncStore calls f
func (f SyncFunc) SyncStore(ctx context.Context, storeID, ownerID uuid.UUID) (SyncSummary, error) {
	return f(ctx, storeID, ownerID)
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// StoreSyncConfig holds scheduler configuration
type StoreSyncConfig struct {
	// Interval between scans of active stores
	Interval          time.Duration
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	// RetryDelay is the base of the exponential backoff
	RetryDelay time.Duration
	QueueSize  int
}

// DefaultStoreSyncConfig returns default configuration
func DefaultStoreSyncConfig() StoreSyncConfig {
	return StoreSyncConfig{
		Interval:          15 * time.Minute,
		MaxConcurrentJobs: 3,
		JobTimeout:        5 * time.Minute,
		RetryAttempts:     3,
		RetryDelay:        30 * time.Second,
		QueueSize:         100,
	}
}

// Validate validates the configuration
func (c *StoreSyncConfig) Validate() error {
	if c.Interval <= 0 || c.MaxConcurrentJobs <= 0 || c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.RetryAttempts < 0 || (c.RetryAttempts > 0 && c.RetryDelay <= 0) {
		return ErrInvalidConfig
	}
	if c.QueueSize <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// StoreSyncScheduler
// ---------------------------------------------------------------------------

// StoreSyncScheduler scans active stores every Interval and pulls each one
// on a worker pool. A store has at most one job queued or running.
type StoreSyncScheduler struct {
	config StoreSyncConfig
	stores StoreSource
	syncer StoreSyncer
	logger *zap.Logger

	jobs   chan *StoreSyncJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	isRunning bool
	inFlight  map[uuid.UUID]struct{}
	retries   map[uuid.UUID]*time.Timer

	historyMu  sync.RWMutex
	history    []*StoreSyncJob
	maxHistory int
}

// NewStoreSyncScheduler creates a scheduler
func NewStoreSyncScheduler(config StoreSyncConfig, stores StoreSource, syncer StoreSyncer, logger *zap.Logger) (*StoreSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &StoreSyncScheduler{
		config:     config,
		stores:     stores,
		syncer:     syncer,
		logger:     logger.Named("store_sync"),
		jobs:       make(chan *StoreSyncJob, config.QueueSize),
		inFlight:   make(map[uuid.UUID]struct{}),
		retries:    make(map[uuid.UUID]*time.Timer),
		maxHistory: 100,
	}, nil
}

// Start launches the workers and the scan loop. The first scan runs at once.
func (s *StoreSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.wg.Add(1)
	go s.scanLoop()

	s.logger.Info("Store sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for the workers
func (s *StoreSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	for id, t := range s.retries {
		t.Stop()
		delete(s.retries, id)
	}
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Store sync scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Store sync scheduler stop timed out")
		return ctx.Err()
	}
}

// ScheduleStore queues a pull of one store
func (s *StoreSyncScheduler) ScheduleStore(storeID, ownerID uuid.UUID) error {
	return s.submit(NewStoreSyncJob(storeID, ownerID, s.config.RetryAttempts), false)
}

// ScanNow queues every active store that has nothing queued or running
func (s *StoreSyncScheduler) ScanNow(ctx context.Context) (int, error) {
	stores, err := s.stores.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}
	queued := 0
	for storeID, ownerID := range stores {
		err := s.ScheduleStore(storeID, ownerID)
		switch {
		case err == nil:
			queued++
		case errors.Is(err, ErrStoreAlreadyQueued):
		default:
			return queued, err
		}
	}
	return queued, nil
}

func (s *StoreSyncScheduler) submit(job *StoreSyncJob, retry bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return ErrSchedulerNotRunning
	}
	if retry {
		delete(s.retries, job.StoreID)
	} else if _, busy := s.inFlight[job.StoreID]; busy {
		return ErrStoreAlreadyQueued
	}

	select {
	case s.jobs <- job:
		s.inFlight[job.StoreID] = struct{}{}
		return nil
	default:
		delete(s.inFlight, job.StoreID)
		return ErrJobQueueFull
	}
}

func (s *StoreSyncScheduler) release(storeID uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, storeID)
	s.mu.Unlock()
}

func (s *StoreSyncScheduler) scanLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.scan()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

func (s *StoreSyncScheduler) scan() {
	queued, err := s.ScanNow(s.ctx)
	if err != nil {
		if s.ctx.Err() == nil {
			s.logger.Error("Store sync scan failed", zap.Error(err))
		}
		return
	}
	s.logger.Debug("Store sync scan queued jobs", zap.Int("queued", queued))
}

func (s *StoreSyncScheduler) worker(workerID int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.jobs:
			s.processJob(job, workerID)
		}
	}
}

func (s *StoreSyncScheduler) processJob(job *StoreSyncJob, workerID int) {
	job.Start()
	log := s.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("store_id", job.StoreID.String()),
	)

	jobCtx, cancel := context.WithTimeout(s.ctx, s.config.JobTimeout)
	summary, err := s.syncer.SyncStore(jobCtx, job.StoreID, job.OwnerID)
	cancel()

	switch {
	case err == nil:
		job.Complete(summary)
		log.Info("Store sync job completed",
			zap.Int("products_created", summary.ProductsCreated),
			zap.Int("orders_created", summary.OrdersCreated),
			zap.Int("orders_skipped", summary.OrdersSkipped),
		)
	case errors.Is(err, integration.ErrSyncInProgress):
		// a manual pull holds the store lock; the next scan picks it up
		job.Skip(err.Error())
		log.Info("Store sync job skipped, pull already running")
	case errors.Is(err, integration.ErrProviderNotSupported), errors.Is(err, shared.ErrNotFound):
		// an unregistered provider or a deleted store fails the same way on every attempt
		job.Fail(err.Error())
		log.Error("Store sync job failed, not retrying", zap.Error(err))
	default:
		job.Fail(err.Error())
		log.Error("Store sync job failed", zap.Int("retry_count", job.RetryCount), zap.Error(err))
		if job.ShouldRetry() && s.ctx.Err() == nil {
			s.scheduleRetry(job, log)
			s.addToHistory(job)
			return
		}
	}

	s.release(job.StoreID)
	s.addToHistory(job)
}

// scheduleRetry keeps the store in flight and resubmits after the backoff
func (s *StoreSyncScheduler) scheduleRetry(job *StoreSyncJob, log *zap.Logger) {
	retry := *job
	delay := retry.ScheduleRetry(s.config.RetryDelay)
	log.Info("Store sync job scheduled for retry", zap.Int("retry_count", retry.RetryCount), zap.Duration("delay", delay))

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		delete(s.inFlight, job.StoreID)
		return
	}
	s.retries[job.StoreID] = time.AfterFunc(delay, func() {
		if err := s.submit(&retry, true); err != nil {
			log.Warn("Failed to resubmit store sync job", zap.Error(err))
			s.release(retry.StoreID)
		}
	})
}

func (s *StoreSyncScheduler) addToHistory(job *StoreSyncJob) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	snapshot := *job
	s.history = append([]*StoreSyncJob{&snapshot}, s.history...)
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
}

// GetJobHistory returns finished jobs, newest first
func (s *StoreSyncScheduler) GetJobHistory(limit int) []*StoreSyncJob {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	result := make([]*StoreSyncJob, limit)
	copy(result, s.history[:limit])
	return result
}
