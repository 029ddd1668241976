// Package service contains the business logic between handlers and
// repositories.
package service

import (
	"context"

	"github.com/deppfellow/dispenser-api/internal/repository"
	"github.com/deppfellow/dispenser-api/internal/server"
)

type Services struct {
	Auth      *AuthService
	Dispenser *DispenserService
}

func NewServices(ctx context.Context, s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService, err := NewAuthService(ctx, s)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:      authService,
		Dispenser: NewDispenserService(repos.Dispenser),
	}, nil
}
