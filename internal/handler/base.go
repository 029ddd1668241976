package handler

import (
	"time"

	"github.com/deppfellow/dispenser-api/internal/middleware"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/deppfellow/dispenser-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies shared by every handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound, validated payload
// and returns the value to encode.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// handleRequest binds and validates the payload, runs the endpoint and
// writes the JSON result. Errors are returned untouched for the global
// error handler.
func handleRequest[Req validation.Validatable, Res any](
	c echo.Context,
	req Req,
	handler HandlerFunc[Req, Res],
	status int,
) error {
	start := time.Now()
	path := c.Request().URL.Path

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.path", path)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("path", path).
		Logger()

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Debug().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
		}
		return err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if txn != nil {
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
	}

	if err != nil {
		if txn != nil {
			txn.AddAttribute("handler.status", "error")
		}
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler returned error")
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed")

	return c.JSON(status, result)
}

// Handle adapts a typed endpoint to an echo.HandlerFunc. newReq is called
// once per request so payloads are never shared between requests.
//
//	e.POST("/x", handler.Handle(fn, http.StatusOK, func() *MyRequest { return &MyRequest{} }))
func Handle[Req validation.Validatable, Res any](
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), handler, status)
	}
}
