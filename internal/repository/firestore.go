package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var productFirestore = newrelic.DatastoreProduct("Firestore")

// FirestoreRepository reads from the dispensers and drinks collections.
type FirestoreRepository struct {
	client *firestore.Client
	log    *zerolog.Logger
	slow   time.Duration
}

func NewFirestoreRepository(client *firestore.Client, log *zerolog.Logger, slowThreshold time.Duration) *FirestoreRepository {
	return &FirestoreRepository{client: client, log: log, slow: slowThreshold}
}

func (r *FirestoreRepository) GetDispenser(ctx context.Context, id string) (*model.Dispenser, error) {
	call := startStoreCall(ctx, r.log, r.slow, productFirestore, collectionDispensers, "get")
	defer call.end()

	// A slash would address a nested collection instead of a document.
	if strings.Contains(id, "/") {
		return nil, errors.Errorf("invalid dispenser id %q: must not contain '/'", id)
	}

	ref := r.client.Collection(collectionDispensers).Doc(id)
	if ref == nil {
		return nil, errors.Errorf("invalid dispenser id %q", id)
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrDispenserNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dispenser %q", id)
	}
	if !snap.Exists() {
		return nil, ErrDispenserNotFound
	}

	return model.DispenserFromMap(snap.Ref.ID, snap.Data()), nil
}

func (r *FirestoreRepository) ListDrinksByDispenser(ctx context.Context, id string) ([]model.Drink, error) {
	call := startStoreCall(ctx, r.log, r.slow, productFirestore, collectionDrinks, "query")
	defer call.end()

	iter := r.client.Collection(collectionDrinks).
		Where(fieldDispenserID, "==", id).
		Documents(ctx)
	defer iter.Stop()

	drinks := []model.Drink{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to query drinks for dispenser %q", id)
		}
		drinks = append(drinks, model.DrinkFromMap(snap.Ref.ID, snap.Data()))
	}

	return drinks, nil
}

// Ping reads a single dispenser reference; any answer from the backend,
// including an empty result, counts as reachable.
func (r *FirestoreRepository) Ping(ctx context.Context) error {
	iter := r.client.Collection(collectionDispensers).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return errors.Wrap(err, "firestore unreachable")
	}
	return nil
}
