// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/deppfellow/dispenser-api/internal/handler"
	"github.com/deppfellow/dispenser-api/internal/middleware"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// CORS runs before routing so preflight and 405 responses carry the headers.
	router.Pre(m.Global.CORS())

	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
	)

	registerSystemRoutes(s, router, h)
	registerDispenserRoutes(router, h, m)

	return router
}
