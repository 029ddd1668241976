package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/dispenser-api/internal/config"
	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/lib/identity"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/pkg/errors"
)

// AuthService turns bearer tokens into caller identities.
type AuthService struct {
	verifier identity.Verifier
}

// NewAuthService builds the verifier for the configured provider.
func NewAuthService(ctx context.Context, s *server.Server) (*AuthService, error) {
	switch s.Config.Auth.Provider {
	case config.AuthProviderClerk:
		return NewAuthServiceWithVerifier(identity.NewClerkVerifier(s.Config.Auth.SecretKey)), nil

	case config.AuthProviderFirebase:
		v, err := identity.NewFirebaseVerifier(ctx, s.Firebase)
		if err != nil {
			return nil, err
		}
		return NewAuthServiceWithVerifier(v), nil
	}

	return nil, fmt.Errorf("unsupported auth provider %q", s.Config.Auth.Provider)
}

func NewAuthServiceWithVerifier(v identity.Verifier) *AuthService {
	return &AuthService{verifier: v}
}

// VerifyIDToken verifies token and returns the caller's claims.
//
// Failures come back as *errs.HTTPError:
//   - token rejected by the provider: 401 "Unauthorized"
//   - provider accepted the call but returned no identity: 400 "Unauthorized, token invalid"
//
// Any other verifier failure, expiry included, is returned wrapped so the
// error handler logs it and answers 500.
func (a *AuthService) VerifyIDToken(ctx context.Context, token string) (*identity.Claims, error) {
	claims, err := a.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		if identity.KindOf(err) == identity.KindInvalidArgument {
			return nil, errs.NewUnauthorizedError("Unauthorized")
		}
		return nil, errors.Wrap(err, "token verification failed")
	}

	if claims == nil {
		return nil, errs.NewBadRequestError("Unauthorized, token invalid", nil)
	}

	return claims, nil
}
