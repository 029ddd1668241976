// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and encodes their results.
package handler

import (
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/deppfellow/dispenser-api/internal/service"
)

type Handlers struct {
	Dispenser *DispenserHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Dispenser: NewDispenserHandler(s, services.Dispenser),
		Health:    NewHealthHandler(s, services.Dispenser),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}
