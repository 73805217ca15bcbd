package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds each dependency check
const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// StatsFunc returns a JSON-encodable snapshot, e.g. connection pool counters
type StatsFunc func() (any, error)

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    map[string]HealthCheck
	dbStats   StatsFunc
}

// NewSystemHandler creates a new SystemHandler. checks maps a dependency
// name such as "database" to its probe.
func NewSystemHandler(name, version string, checks map[string]HealthCheck) *SystemHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    checks,
	}
}

// WithDatabaseStats adds the database pool counters to the system info response
func (h *SystemHandler) WithDatabaseStats(fn StatsFunc) *SystemHandler {
	h.dbStats = fn
	return h
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"UniKhata"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
	Database  any    `json:"database,omitempty"`
}

// HealthResponse is the body of the health endpoint
// @name HandlerHealthResponse
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
	Time   string            `json:"time" example:"2026-01-23T12:00:00Z"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns the service name, version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.dbStats != nil {
		if stats, err := h.dbStats(); err == nil {
			info.Database = stats
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Probes every dependency. Answers 503 when any probe fails.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(h.checks)),
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := h.checks[name](ctx)
		cancel()
		if err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
