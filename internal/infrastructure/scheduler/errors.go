package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when submitting to a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull is returned when the job queue is full
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrStoreAlreadyQueued is returned when a store already has a queued or running job
	ErrStoreAlreadyQueued = errors.New("store sync already queued")
)
