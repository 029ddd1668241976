package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

const testProjectID = "bar-robot"

type fakeFirebaseClient struct {
	token *auth.Token
	err   error
}

func (f *fakeFirebaseClient) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return f.token, f.err
}

func TestKindOf(t *testing.T) {
	verr := newVerificationError(ProviderFirebase, KindInvalidArgument, errors.New("bad token"))

	assert.Equal(t, KindInvalidArgument, KindOf(verr))
	assert.Equal(t, KindInvalidArgument, KindOf(fmt.Errorf("wrapped: %w", verr)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestVerificationError(t *testing.T) {
	cause := errors.New("boom")
	verr := newVerificationError(ProviderClerk, KindExpired, cause)

	assert.ErrorIs(t, verr, cause)
	assert.Contains(t, verr.Error(), "clerk")
	assert.Contains(t, verr.Error(), "expired")
}

func TestFirebaseVerifier_Success(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeFirebaseClient{token: &auth.Token{
		UID:      "user-1",
		Issuer:   "https://securetoken.google.com/bar-robot",
		Audience: "bar-robot",
		Claims:   map[string]any{"admin": true},
	}}}

	claims, err := v.VerifyIDToken(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "bar-robot", claims.Audience)
	assert.Equal(t, ProviderFirebase, claims.Provider)
	assert.Equal(t, true, claims.Custom["admin"])
}

func TestFirebaseVerifier_NilToken(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeFirebaseClient{}}

	claims, err := v.VerifyIDToken(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Nil(t, claims)
}

func TestFirebaseVerifier_UnclassifiedErrorIsInternal(t *testing.T) {
	v := &FirebaseVerifier{client: &fakeFirebaseClient{err: errors.New("network down")}}

	claims, err := v.VerifyIDToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, ProviderFirebase, v.Name())
}

func newRealFirebaseVerifier(t *testing.T) *FirebaseVerifier {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", "")

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: testProjectID}, option.WithoutAuthentication())
	require.NoError(t, err)

	v, err := NewFirebaseVerifier(ctx, app)
	require.NoError(t, err)
	return v
}

// unsignedIDToken builds a structurally valid ID token for testProjectID.
// The signature is junk, so it only gets past the checks that run before
// key lookup.
func unsignedIDToken(t *testing.T, issuedAt, expires time.Time) string {
	t.Helper()

	segment := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	return strings.Join([]string{
		segment(map[string]any{"alg": "RS256", "kid": "k1", "typ": "JWT"}),
		segment(map[string]any{
			"aud":       testProjectID,
			"iss":       "https://securetoken.google.com/" + testProjectID,
			"sub":       "user-1",
			"iat":       issuedAt.Unix(),
			"auth_time": issuedAt.Unix(),
			"exp":       expires.Unix(),
		}),
		base64.RawURLEncoding.EncodeToString([]byte("signature")),
	}, ".")
}

func TestFirebaseVerifier_MalformedTokenIsInvalidArgument(t *testing.T) {
	v := newRealFirebaseVerifier(t)

	for _, token := range []string{"not-a-jwt", "a.b.c", " "} {
		claims, err := v.VerifyIDToken(context.Background(), token)
		require.Error(t, err, token)
		assert.Nil(t, claims)
		assert.Equal(t, KindInvalidArgument, KindOf(err), token)
	}
}

func TestFirebaseVerifier_ExpiredTokenIsExpired(t *testing.T) {
	v := newRealFirebaseVerifier(t)
	now := time.Now()

	token := unsignedIDToken(t, now.Add(-2*time.Hour), now.Add(-time.Hour))

	claims, err := v.VerifyIDToken(context.Background(), token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Equal(t, KindExpired, KindOf(err))
}

func TestFirebaseVerifier_FutureIssuedAtIsInvalidArgument(t *testing.T) {
	v := newRealFirebaseVerifier(t)
	now := time.Now()

	token := unsignedIDToken(t, now.Add(time.Hour), now.Add(2*time.Hour))

	_, err := v.VerifyIDToken(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestClerkVerifier_MalformedTokenIsInvalidArgument(t *testing.T) {
	v := NewClerkVerifier("sk_test_dummy")

	claims, err := v.VerifyIDToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
	assert.Equal(t, ProviderClerk, v.Name())
}
