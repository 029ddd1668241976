package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"57014": QueryCanceled,
		"42P01": UndefinedTable,
		"42703": UndefinedColumn,
		"22P02": InvalidTextRepresentation,
		"08006": ConnectionFailure,
		"08001": ConnectionFailure,
		"57P01": AdminShutdown,
		"53300": TooManyConnections,
		"23505": Other,
		"":      Other,
	}

	for sqlstate, want := range tests {
		assert.Equal(t, want, MapCode(sqlstate), sqlstate)
	}
}

func TestClassify(t *testing.T) {
	pgerr := &pgconn.PgError{Code: "42P01", Message: `relation "drinks" does not exist`, TableName: "drinks"}
	wrapped := fmt.Errorf("query drinks: %w", pgerr)

	err := Classify(wrapped)

	var sqlErr *Error
	require.True(t, errors.As(err, &sqlErr))
	assert.Equal(t, UndefinedTable, sqlErr.Code)
	assert.Equal(t, "Undefined Table: drinks", sqlErr.Summary())
	assert.False(t, sqlErr.Retryable())
	assert.ErrorIs(t, err, pgerr)
}

func TestClassify_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, Classify(plain))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Convert(&pgconn.PgError{Code: "08006"}).Retryable())
	assert.True(t, Convert(&pgconn.PgError{Code: "57014"}).Retryable())
	assert.False(t, Convert(&pgconn.PgError{Code: "42501"}).Retryable())
}
