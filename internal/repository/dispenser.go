// Package repository reads dispensers and drinks from the document store.
//
// Two drivers implement DispenserRepository: Firestore, the production
// store, and PostgreSQL with JSONB columns for self-hosted deployments.
package repository

import (
	"context"
	"time"

	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	collectionDispensers = "dispensers"
	collectionDrinks     = "drinks"
	fieldDispenserID     = "dispenser_id"
)

// ErrDispenserNotFound is returned when no dispenser has the requested id.
var ErrDispenserNotFound = errors.New("dispenser not found")

// DispenserRepository is the read-only view of the store used by the
// drinks lookup.
type DispenserRepository interface {
	// GetDispenser returns the dispenser with id, or ErrDispenserNotFound.
	GetDispenser(ctx context.Context, id string) (*model.Dispenser, error)

	// ListDrinksByDispenser returns every drink whose dispenser_id equals id.
	// No matches is an empty slice, not an error.
	ListDrinksByDispenser(ctx context.Context, id string) ([]model.Drink, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}

// storeCall times a store operation, records it as a New Relic datastore
// segment and warns when it runs longer than slowThreshold.
type storeCall struct {
	start     time.Time
	segment   *newrelic.DatastoreSegment
	operation string
	log       *zerolog.Logger
	slow      time.Duration
}

// startStoreCall prefers the request-scoped logger over log when ctx carries one.
func startStoreCall(ctx context.Context, log *zerolog.Logger, slow time.Duration, product newrelic.DatastoreProduct, collection, operation string) *storeCall {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		log = l
	}

	txn := newrelic.FromContext(ctx)
	return &storeCall{
		start: time.Now(),
		segment: &newrelic.DatastoreSegment{
			StartTime:  txn.StartSegmentNow(),
			Product:    product,
			Collection: collection,
			Operation:  operation,
		},
		operation: operation,
		log:       log,
		slow:      slow,
	}
}

func (c *storeCall) end() {
	c.segment.End()

	elapsed := time.Since(c.start)
	if c.slow > 0 && elapsed > c.slow {
		c.log.Warn().
			Str("operation", c.operation).
			Str("collection", c.segment.Collection).
			Dur("duration", elapsed).
			Msg("slow store call")
	}
}
