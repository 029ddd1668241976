package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	firebase "firebase.google.com/go/v4"
	"github.com/deppfellow/dispenser-api/internal/errs"
	"github.com/deppfellow/dispenser-api/internal/lib/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestVerifyIDToken(t *testing.T) {
	tests := []struct {
		name       string
		verifier   *fakeVerifier
		wantStatus int
		wantMsg    string
		wantPlain  bool
	}{
		{
			name:       "invalid argument",
			verifier:   &fakeVerifier{err: &identity.VerificationError{Kind: identity.KindInvalidArgument, Err: errors.New("bad")}},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Unauthorized",
		},
		{
			name:       "no claims",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Unauthorized, token invalid",
		},
		{
			name:      "expired",
			verifier:  &fakeVerifier{err: &identity.VerificationError{Kind: identity.KindExpired, Err: errors.New("exp")}},
			wantPlain: true,
		},
		{
			name:      "provider outage",
			verifier:  &fakeVerifier{err: errors.New("dial tcp: timeout")},
			wantPlain: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthServiceWithVerifier(tt.verifier)

			claims, err := svc.VerifyIDToken(context.Background(), "tok")
			require.Error(t, err)
			assert.Nil(t, claims)

			var httpErr *errs.HTTPError
			if tt.wantPlain {
				assert.False(t, errors.As(err, &httpErr), "unexpected failures must not become client errors")
				return
			}
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestVerifyIDToken_Success(t *testing.T) {
	svc := NewAuthServiceWithVerifier(&fakeVerifier{claims: &identity.Claims{UID: "u1"}})

	claims, err := svc.VerifyIDToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
}

func TestVerifyIDToken_FirebaseMalformedTokenIsUnauthorized(t *testing.T) {
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", "")
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: "bar-robot"}, option.WithoutAuthentication())
	require.NoError(t, err)
	verifier, err := identity.NewFirebaseVerifier(ctx, app)
	require.NoError(t, err)

	svc := NewAuthServiceWithVerifier(verifier)

	claims, err := svc.VerifyIDToken(ctx, "not-a-jwt")
	require.Error(t, err)
	assert.Nil(t, claims)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Unauthorized", httpErr.Message)
}
