package middleware

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

// Profiling labels each request's CPU and allocation samples with its
// method and route pattern so Pyroscope can slice profiles per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || slices.Contains(cfg.SkipPaths, route) {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  route,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
