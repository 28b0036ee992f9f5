package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// ReadinessCheck names one dependency of the readiness probe
type ReadinessCheck struct {
	Name    string
	Checker HealthChecker
}

// CatalogHealth fails until a catalog with at least one task is loaded
func CatalogHealth(source CatalogSource) HealthChecker {
	return HealthCheckFunc(func(context.Context) error {
		if c := source.Current(); c == nil || c.Len() == 0 {
			return domain.ErrEmptyCatalog
		}
		return nil
	})
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz runs every check and reports each outcome. The service is
// ready only when all of them pass.
// @Summary Readiness check
// @Description Returns OK when sessions can be created and a task catalog is loaded
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: StatusOK, Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			if err := c.Checker.CheckHealth(ctx); err != nil {
				logger.FromContext(ctx).Warn(LogMsgReadinessFailed, "check", c.Name, "error", err)
				resp.Status = StatusUnavailable
				resp.Checks[c.Name] = err.Error()
				continue
			}
			resp.Checks[c.Name] = StatusOK
		}

		status := http.StatusOK
		if resp.Status != StatusOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
