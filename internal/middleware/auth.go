package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/server"
	"github.com/deppfellow/dispenser-api/internal/service"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// ExtractBearerToken returns the token from an Authorization header value.
//
// The header must start with "Bearer ". The token runs up to any following
// "Bearer " occurrence; an empty token is reported as missing.
func ExtractBearerToken(header string) (string, bool) {
	rest, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}

	token, _, _ := strings.Cut(rest, bearerPrefix)
	return token, token != ""
}

// RequireAuth verifies the bearer token and stores the caller's uid under
// UserIDKey. Verification failures are returned for the error handler.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errs.NewUnauthorizedError("Unauthorized")
		}

		start := time.Now()
		claims, err := auth.auth.VerifyIDToken(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(UserIDKey, claims.UID)
		c.Set(AuthProviderKey, claims.Provider)

		l := GetLogger(c).With().Str("user_id", claims.UID).Logger()
		setLogger(c, &l)

		l.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("caller authenticated")

		return next(c)
	}
}
