package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.json
var openAPISpec []byte

// OpenAPIHandler serves the embedded OpenAPI description of the API.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSONBlob(http.StatusOK, openAPISpec)
}
