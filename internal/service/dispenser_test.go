package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/deppfellow/dispenser-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDrinkMapping_DispenserNotFound(t *testing.T) {
	repo := &fakeRepo{dispenserErr: repository.ErrDispenserNotFound}

	_, err := NewDispenserService(repo).GetDrinkMapping(context.Background(), "missing")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Dispenser not found", httpErr.Message)
	assert.Zero(t, repo.drinkCalls, "drinks must not be queried for a missing dispenser")
}

func TestGetDrinkMapping_NoDrinks(t *testing.T) {
	repo := &fakeRepo{dispenser: &model.Dispenser{ID: "D1"}, drinks: []model.Drink{}}

	_, err := NewDispenserService(repo).GetDrinkMapping(context.Background(), "D1")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "No matching drinks found", httpErr.Message)
}

func TestGetDrinkMapping_StoreFailures(t *testing.T) {
	for name, repo := range map[string]*fakeRepo{
		"dispenser": {dispenserErr: errors.New("unavailable")},
		"drinks":    {dispenser: &model.Dispenser{ID: "D1"}, drinksErr: errors.New("unavailable")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewDispenserService(repo).GetDrinkMapping(context.Background(), "D1")
			require.Error(t, err)

			var httpErr *errs.HTTPError
			assert.False(t, errors.As(err, &httpErr))
		})
	}
}

func TestGetDrinkMapping_Success(t *testing.T) {
	repo := &fakeRepo{
		dispenser: &model.Dispenser{ID: "D1", Pumps: []model.Pump{
			{IngredientID: "i1", IngredientLabel: "Vodka"},
			{IngredientLabel: "Empty"},
		}},
		drinks: []model.Drink{
			{ID: "a", DispenserID: "D1"},
			{ID: "b", DispenserID: "D1"},
		},
	}

	mapping, err := NewDispenserService(repo).GetDrinkMapping(context.Background(), "D1")
	require.NoError(t, err)

	require.Len(t, mapping.PumpMapping, 1)
	assert.Equal(t, "i1", mapping.PumpMapping[0].IngredientID)
	assert.Len(t, mapping.Drinks, 2)
}
