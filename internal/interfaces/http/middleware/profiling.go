package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
)

// Profiling label keys attached to each request
const (
	ProfilingLabelMethod = "http_method"
	ProfilingLabelRoute  = "http_route"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	// Enabled controls whether profiling labels are added to requests.
	Enabled bool
	// SkipPaths are exact paths that never get labels.
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that never get labels.
	SkipPathPrefixes []string
}

// DefaultProfilingConfig labels API requests only; the health check and
// static assets are skipped.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/api/health"},
	}
}

// ProfilingWithConfig wraps the rest of the chain in Pyroscope labels so CPU
// profiles can be filtered by route. Unmatched paths are never labelled.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || skipProfiling(cfg, c.Request.URL.Path) {
			c.Next()
			return
		}

		labels := map[string]string{
			ProfilingLabelMethod: c.Request.Method,
			ProfilingLabelRoute:  route,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func skipProfiling(cfg ProfilingConfig, path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
