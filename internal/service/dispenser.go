package service

import (
	"context"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/model"
	"github.com/deppfellow/dispenser-api/internal/repository"
	"github.com/pkg/errors"
)

var (
	codeDispenserNotFound = "DISPENSER_NOT_FOUND"
	codeDrinksNotFound    = "DRINKS_NOT_FOUND"
)

type DispenserService struct {
	repo repository.DispenserRepository
}

func NewDispenserService(repo repository.DispenserRepository) *DispenserService {
	return &DispenserService{repo: repo}
}

// GetDrinkMapping loads a dispenser and its drinks and shapes the response.
//
// The drinks query only runs once the dispenser is known to exist. A
// dispenser with no drinks is reported as not found.
func (s *DispenserService) GetDrinkMapping(ctx context.Context, dispenserID string) (*model.DrinkMapping, error) {
	dispenser, err := s.repo.GetDispenser(ctx, dispenserID)
	if errors.Is(err, repository.ErrDispenserNotFound) {
		return nil, errs.NewNotFoundError("Dispenser not found", &codeDispenserNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dispenser lookup failed")
	}

	drinks, err := s.repo.ListDrinksByDispenser(ctx, dispenserID)
	if err != nil {
		return nil, errors.Wrap(err, "drinks lookup failed")
	}
	if len(drinks) == 0 {
		return nil, errs.NewNotFoundError("No matching drinks found", &codeDrinksNotFound)
	}

	return model.NewDrinkMapping(dispenser, drinks), nil
}

// Ping reports whether the backing store is reachable.
func (s *DispenserService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
