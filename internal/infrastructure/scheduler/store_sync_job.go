package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// StoreSyncJobStatus represents the status of a store sync job
type StoreSyncJobStatus string

const (
	StoreSyncJobStatusPending StoreSyncJobStatus = "PENDING"
	StoreSyncJobStatusRunning StoreSyncJobStatus = "RUNNING"
	StoreSyncJobStatusSuccess StoreSyncJobStatus = "SUCCESS"
	StoreSyncJobStatusSkipped StoreSyncJobStatus = "SKIPPED"
	StoreSyncJobStatusFailed  StoreSyncJobStatus = "FAILED"
)

// maxRetryDelay caps the exponential backoff
const maxRetryDelay = 30 * time.Minute

// SyncSummary is what one store pull produced
type SyncSummary struct {
	ProductsCreated int
	ProductsMatched int
	OrdersCreated   int
	OrdersSkipped   int
}

// StoreSyncJob is one scheduled pull of a store
type StoreSyncJob struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	OwnerID     uuid.UUID
	Status      StoreSyncJobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time
	Summary     SyncSummary
}

// NewStoreSyncJob creates a pending job
func NewStoreSyncJob(storeID, ownerID uuid.UUID, maxRetries int) *StoreSyncJob {
	return &StoreSyncJob{
		ID:         uuid.New(),
		StoreID:    storeID,
		OwnerID:    ownerID,
		Status:     StoreSyncJobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job as running
func (j *StoreSyncJob) Start() {
	now := time.Now()
	j.Status = StoreSyncJobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *StoreSyncJob) Complete(summary SyncSummary) {
	now := time.Now()
	j.Status = StoreSyncJobStatusSuccess
	j.Summary = summary
	j.CompletedAt = &now
}

// Skip marks a job that found another pull of the same store running
func (j *StoreSyncJob) Skip(reason string) {
	now := time.Now()
	j.Status = StoreSyncJobStatusSkipped
	j.Error = reason
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *StoreSyncJob) Fail(err string) {
	now := time.Now()
	j.Status = StoreSyncJobStatusFailed
	j.Error = err
	j.CompletedAt = &now
}

// ShouldRetry returns true if a failed job has retries left
func (j *StoreSyncJob) ShouldRetry() bool {
	return j.Status == StoreSyncJobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry sets the job pending again and returns the backoff delay:
// baseDelay * 2^(retryCount-1), capped at 30 minutes.
func (j *StoreSyncJob) ScheduleRetry(baseDelay time.Duration) time.Duration {
	j.RetryCount++
	j.Status = StoreSyncJobStatusPending
	delay := baseDelay * time.Duration(1<<(j.RetryCount-1))
	if delay > maxRetryDelay || delay <= 0 {
		delay = maxRetryDelay
	}
	next := time.Now().Add(delay)
	j.NextRetryAt = &next
	return delay
}
