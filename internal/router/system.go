package router

import (
	"github.com/deppfellow/dispenser-api/internal/handler"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/labstack/echo/v4"
)

func registerSystemRoutes(s *server.Server, r *echo.Echo, h *handler.Handlers) {
	if s.Config.Observability.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
