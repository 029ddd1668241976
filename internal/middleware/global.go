package middleware

import (
	"net/http"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/deppfellow/dispenser-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST"
	corsAllowHeaders = "Content-Type, Authorization"
)

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS sets the cross-origin headers on every response and answers
// preflight requests with 204 before routing. Register it with e.Pre.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
			h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

// RequestLogger writes one access line per request. Server errors are
// logged at error level, everything else at info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so v.Status is still 200.
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			l := GetLogger(c)

			var e *zerolog.Event
			if statusCode >= http.StatusInternalServerError {
				e = l.Error()
			} else {
				e = l.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler writes every error as a status code and a plain-text
// reason.
//
// *errs.HTTPError values are written as they are. Echo's routing errors
// become the matching errs value. Anything else is an unexpected failure:
// it is logged with its stack and answered with a bare 500 so no internal
// detail reaches the caller.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	if httpErr.IsServerError() {
		e := GetLogger(c).Error().Stack().
			Err(err).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code)

		var sqlErr *sqlerr.Error
		if errors.As(err, &sqlErr) {
			e = e.Str("db_error", string(sqlErr.Code)).
				Str("db_sqlstate", sqlErr.DatabaseCode).
				Bool("db_retryable", sqlErr.Retryable())
		}

		e.Msg("request failed")
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.String(httpErr.Status, httpErr.Message)
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusMethodNotAllowed:
			return errs.NewMethodNotAllowedError()
		case http.StatusNotFound:
			return errs.NewNotFoundError("Not Found", nil)
		case http.StatusUnauthorized:
			return errs.NewUnauthorizedError("Unauthorized")
		}
		if echoErr.Code < http.StatusInternalServerError {
			msg, ok := echoErr.Message.(string)
			if !ok {
				msg = http.StatusText(echoErr.Code)
			}
			return &errs.HTTPError{
				Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
				Message: msg,
				Status:  echoErr.Code,
			}
		}
	}

	return errs.NewInternalServerError()
}

// statusOf is the status GlobalErrorHandler will answer err with.
func statusOf(err error) int {
	return toHTTPError(err).Status
}
