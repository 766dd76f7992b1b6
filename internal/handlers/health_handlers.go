package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"bookstore/internal/jobs/background"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is satisfied by *pgxpool.Pool and the cache service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobStatusProvider reports the background schedule.
type JobStatusProvider interface {
	GetJobStatus() []background.JobStatus
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db      Pinger
	cache   Pinger
	storage services.MinioService
	bucket  string
	jobs    JobStatusProvider
	version string
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance. cache, storage and
// jobs may be nil when the backing service is not configured.
func NewHealthHandlers(db Pinger, cache Pinger, storage services.MinioService, bucket string, jobs JobStatusProvider, version string) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		storage: storage,
		bucket:  bucket,
		jobs:    jobs,
		version: version,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string                 `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	Services   map[string]string      `json:"services"`
	Jobs       []background.JobStatus `json:"jobs,omitempty"`
	Uptime     string                 `json:"uptime"`
	Version    string                 `json:"version"`
	Goroutines int                    `json:"goroutines"`
}

// HealthCheck handles GET /health. A failing dependency degrades the status to 206.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
	}

	check := func(name string, fn func(context.Context) error) {
		if fn == nil {
			health.Services[name] = "disabled"
			return
		}
		if err := fn(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
			return
		}
		health.Services[name] = "healthy"
	}
	check("database", h.db.Ping)
	check("redis", h.pingCache())
	check("storage", h.checkStorage())

	if h.jobs != nil {
		health.Jobs = h.jobs.GetJobStatus()
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) pingCache() func(context.Context) error {
	if h.cache == nil {
		return nil
	}
	return h.cache.Ping
}

func (h *HealthHandlers) checkStorage() func(context.Context) error {
	if h.storage == nil {
		return nil
	}
	return func(ctx context.Context) error {
		found, err := h.storage.BucketExists(ctx, h.bucket)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("bucket %s not found", h.bucket)
		}
		return nil
	}
}

// ReadinessCheck handles GET /health/ready. Only the database is critical.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck handles GET /health/live
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
