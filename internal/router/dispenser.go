package router

import (
	"github.com/deppfellow/dispenser-api/internal/handler"
	"github.com/deppfellow/dispenser-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerDispenserRoutes serves the drinks lookup on every path, so the
// function answers under whatever name it is deployed as. Any method other
// than POST falls through to echo's 405.
func registerDispenserRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.POST("/*", h.Dispenser.GetDrinksByDispenserID(), m.Auth.RequireAuth)
}
