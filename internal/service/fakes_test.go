package service

import (
	"context"

	"github.com/deppfellow/dispenser-api/internal/lib/identity"
	"github.com/deppfellow/dispenser-api/internal/model"
)

type fakeVerifier struct {
	claims *identity.Claims
	err    error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*identity.Claims, error) {
	return f.claims, f.err
}

func (f *fakeVerifier) Name() string { return "fake" }

type fakeRepo struct {
	dispenser    *model.Dispenser
	dispenserErr error
	drinks       []model.Drink
	drinksErr    error
	drinkCalls   int
}

func (f *fakeRepo) GetDispenser(context.Context, string) (*model.Dispenser, error) {
	return f.dispenser, f.dispenserErr
}

func (f *fakeRepo) ListDrinksByDispenser(context.Context, string) ([]model.Drink, error) {
	f.drinkCalls++
	return f.drinks, f.drinksErr
}

func (f *fakeRepo) Ping(context.Context) error { return nil }
