package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/dispenser-api/internal/middleware"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	// Store errors can carry hosts and credentials, so only the log and
	// the custom event get the detail.
	storeUnreachable = "store unreachable"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status       string `json:"status"`
	Driver       string `json:"driver,omitempty"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthHandler struct {
	Handler
	store Pinger
}

func NewHealthHandler(s *server.Server, store Pinger) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		store:   store,
	}
}

// CheckHealth pings the document store and answers 200 when it is
// reachable, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]HealthCheck{},
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	storeStart := time.Now()
	err := h.store.Ping(ctx)
	elapsed := time.Since(storeStart)

	check := HealthCheck{
		Status:       statusHealthy,
		Driver:       h.server.Config.Store.Driver,
		ResponseTime: elapsed.String(),
	}

	if err != nil {
		check.Status = statusUnhealthy
		check.Error = storeUnreachable
		response.Status = statusUnhealthy

		logger.Error().Err(err).Dur("response_time", elapsed).Msg("store health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "store",
				"driver":           h.server.Config.Store.Driver,
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	}
	response.Checks["store"] = check

	if response.Status != statusHealthy {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}
