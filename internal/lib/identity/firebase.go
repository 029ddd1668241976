package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// ProviderFirebase is the Name of the Firebase verifier.
const ProviderFirebase = "firebase"

// firebaseTokenVerifier is the subset of *auth.Client the verifier uses.
type firebaseTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	client firebaseTokenVerifier
}

// NewFirebaseVerifier creates a verifier backed by the app's Auth client.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firebase auth client")
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Name() string {
	return ProviderFirebase
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, token string) (*Claims, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, newVerificationError(ProviderFirebase, classifyFirebaseError(err), err)
	}
	if decoded == nil {
		return nil, nil
	}

	return &Claims{
		UID:      decoded.UID,
		Issuer:   decoded.Issuer,
		Audience: decoded.Audience,
		Provider: ProviderFirebase,
		Custom:   decoded.Claims,
	}, nil
}

// classifyFirebaseError maps Firebase Auth errors onto ErrorKind.
// Expiry and revocation are reported separately from malformed tokens,
// mirroring the provider's own error codes.
func classifyFirebaseError(err error) ErrorKind {
	switch {
	case auth.IsIDTokenExpired(err):
		return KindExpired
	case auth.IsIDTokenRevoked(err):
		return KindRevoked
	case auth.IsIDTokenInvalid(err):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
