// Package middleware holds the global and route-level middleware: CORS,
// bearer-token authentication, request ids, request-scoped logging, New
// Relic tracing and the global error handler.
package middleware
