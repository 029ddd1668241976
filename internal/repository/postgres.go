package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/deppfellow/dispenser-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	getDispenserQuery = `SELECT id, pumps FROM dispensers WHERE id = $1`

	listDrinksQuery = `
		SELECT id, dispenser_id, data
		FROM drinks
		WHERE dispenser_id = $1
		ORDER BY id`
)

// PostgresRepository stores documents as JSONB rows; see the
// database/migrations directory for the schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
	slow time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, log *zerolog.Logger, slowThreshold time.Duration) *PostgresRepository {
	return &PostgresRepository{pool: pool, log: log, slow: slowThreshold}
}

func (r *PostgresRepository) GetDispenser(ctx context.Context, id string) (*model.Dispenser, error) {
	call := startStoreCall(ctx, r.log, r.slow, newrelic.DatastorePostgres, collectionDispensers, "select")
	defer call.end()

	var (
		dispenserID string
		pumps       []byte
	)
	err := r.pool.QueryRow(ctx, getDispenserQuery, id).Scan(&dispenserID, &pumps)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDispenserNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(sqlerr.Classify(err), "failed to get dispenser %q", id)
	}

	return dispenserFromRow(dispenserID, pumps), nil
}

func (r *PostgresRepository) ListDrinksByDispenser(ctx context.Context, id string) ([]model.Drink, error) {
	call := startStoreCall(ctx, r.log, r.slow, newrelic.DatastorePostgres, collectionDrinks, "select")
	defer call.end()

	rows, err := r.pool.Query(ctx, listDrinksQuery, id)
	if err != nil {
		return nil, errors.Wrapf(sqlerr.Classify(err), "failed to query drinks for dispenser %q", id)
	}

	drinks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Drink, error) {
		var (
			drinkID     string
			dispenserID string
			data        map[string]any
		)
		if err := row.Scan(&drinkID, &dispenserID, &data); err != nil {
			return model.Drink{}, err
		}
		return drinkFromRow(drinkID, dispenserID, data), nil
	})
	if err != nil {
		return nil, errors.Wrapf(sqlerr.Classify(err), "failed to read drinks for dispenser %q", id)
	}

	return drinks, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return errors.Wrap(sqlerr.Classify(r.pool.Ping(ctx)), "postgres unreachable")
}

// dispenserFromRow decodes the pumps column. Invalid JSON leaves the
// dispenser without pumps, the same as a missing pumps field.
func dispenserFromRow(id string, pumps []byte) *model.Dispenser {
	var list []any
	if len(pumps) > 0 {
		_ = json.Unmarshal(pumps, &list)
	}
	return model.DispenserFromMap(id, map[string]any{"pumps": list})
}

// drinkFromRow merges the dispenser_id column into the stored data. The
// column is authoritative since the query filtered on it.
func drinkFromRow(id, dispenserID string, data map[string]any) model.Drink {
	if data == nil {
		data = map[string]any{}
	}
	data[fieldDispenserID] = dispenserID
	return model.DrinkFromMap(id, data)
}
