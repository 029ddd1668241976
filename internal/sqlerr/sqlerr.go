// Package sqlerr classifies PostgreSQL driver errors for the postgres
// store driver.
//
// Reads can only fail for operational reasons (missing schema, lost
// connection, cancelled query), so classification feeds logs and APM; every
// one of these still reaches the caller as a 500.
package sqlerr

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code is the classified kind of a database error.
type Code string

const (
	Other                     Code = "other"
	ConnectionFailure         Code = "connection_failure"
	QueryCanceled             Code = "query_canceled"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
	InvalidTextRepresentation Code = "invalid_text_representation"
	InsufficientPrivilege     Code = "insufficient_privilege"
	TooManyConnections        Code = "too_many_connections"
	AdminShutdown             Code = "admin_shutdown"
)

// MapCode maps a SQLSTATE to a Code. Whole classes are matched where the
// individual codes do not matter.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "57014":
		return QueryCanceled
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "22P02":
		return InvalidTextRepresentation
	case "42501":
		return InsufficientPrivilege
	case "53300":
		return TooManyConnections
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	}

	if strings.HasPrefix(sqlstate, "08") {
		return ConnectionFailure
	}
	return Other
}

// Error is a classified PostgreSQL error.
type Error struct {
	Code         Code
	DatabaseCode string
	Message      string
	TableName    string
	ColumnName   string
	driverErr    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (SQLSTATE %s): %s", e.Summary(), e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Summary is a short human-readable description such as
// "Undefined Table: dispensers".
func (e *Error) Summary() string {
	summary := humanize(string(e.Code))
	if e.TableName != "" {
		summary += ": " + e.TableName
	}
	return summary
}

// Retryable reports whether the same read could succeed if repeated.
func (e *Error) Retryable() bool {
	switch e.Code {
	case ConnectionFailure, QueryCanceled, TooManyConnections, AdminShutdown:
		return true
	}
	return false
}

// Convert classifies a driver error.
func Convert(src *pgconn.PgError) *Error {
	return &Error{
		Code:         MapCode(src.Code),
		DatabaseCode: src.Code,
		Message:      src.Message,
		TableName:    src.TableName,
		ColumnName:   src.ColumnName,
		driverErr:    src,
	}
}

// Classify returns err with any *pgconn.PgError in its chain replaced by
// a classified *Error. Other errors are returned unchanged.
func Classify(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return Convert(pgerr)
	}
	return err
}

func humanize(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
