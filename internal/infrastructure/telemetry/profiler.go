package telemetry

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	// MutexAndBlock turns on the mutex and block profiles, which cost runtime overhead
	MutexAndBlock bool
}

// mutex and block sampling rates used when MutexAndBlock is on
const (
	mutexProfileFraction = 5
	blockProfileRate     = 5
)

// Profiler wraps the Pyroscope profiler with lifecycle management
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts the profiler. Disabled profiling returns a no-op profiler.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled, using no-op profiler")
		return p, nil
	}

	if cfg.ServerAddress == "" {
		return nil, errors.New("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, errors.New("profiler application name is required when profiling is enabled")
	}

	if cfg.MutexAndBlock {
		runtime.SetMutexProfileFraction(mutexProfileFraction)
		runtime.SetBlockProfileRate(blockProfileRate)
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}
	if podName := os.Getenv("POD_NAME"); podName != "" {
		tags["pod"] = podName
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          newPyroscopeLogger(logger),
		Tags:            tags,
		ProfileTypes:    profileTypes(cfg.MutexAndBlock),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Bool("mutex_and_block", cfg.MutexAndBlock),
	)
	return p, nil
}

func profileTypes(mutexAndBlock bool) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if mutexAndBlock {
		types = append(types,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		)
	}
	return types
}

// Stop flushes pending profiles. Safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}
	p.stopped = true

	if p.profiler == nil {
		return nil
	}
	if err := p.profiler.Stop(); err != nil {
		p.logger.Error("Error stopping profiler", zap.Error(err))
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// IsEnabled returns whether profiling is running
func (p *Profiler) IsEnabled() bool {
	return p.config.Enabled && p.profiler != nil
}

// pyroscopeLogger adapts zap.Logger to pyroscope.Logger
type pyroscopeLogger struct {
	logger *zap.SugaredLogger
}

func newPyroscopeLogger(logger *zap.Logger) pyroscope.Logger {
	return &pyroscopeLogger{logger: logger.Named("pyroscope").Sugar()}
}

func (l *pyroscopeLogger) Infof(format string, args ...any)  { l.logger.Infof(format, args...) }
func (l *pyroscopeLogger) Debugf(format string, args ...any) { l.logger.Debugf(format, args...) }
func (l *pyroscopeLogger) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }
