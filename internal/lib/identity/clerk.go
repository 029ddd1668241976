package identity

import (
	"context"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
)

// ProviderClerk is the Name of the Clerk verifier.
const ProviderClerk = "clerk"

// ClerkVerifier verifies Clerk session tokens.
//
// The signing key is fetched from the Clerk JWKS endpoint on every call;
// the token's kid selects the key.
type ClerkVerifier struct {
	jwksClient *jwks.Client
}

// NewClerkVerifier creates a verifier for the Clerk instance owning secretKey.
func NewClerkVerifier(secretKey string) *ClerkVerifier {
	clerk.SetKey(secretKey)

	return &ClerkVerifier{
		jwksClient: jwks.NewClient(&clerk.ClientConfig{
			BackendConfig: clerk.BackendConfig{Key: clerk.String(secretKey)},
		}),
	}
}

func (v *ClerkVerifier) Name() string {
	return ProviderClerk
}

func (v *ClerkVerifier) VerifyIDToken(ctx context.Context, token string) (*Claims, error) {
	unverified, err := jwt.Decode(ctx, &jwt.DecodeParams{Token: token})
	if err != nil {
		return nil, newVerificationError(ProviderClerk, KindInvalidArgument, err)
	}

	jwk, err := jwt.GetJSONWebKey(ctx, &jwt.GetJSONWebKeyParams{
		KeyID:      unverified.KeyID,
		JWKSClient: v.jwksClient,
	})
	if err != nil {
		return nil, newVerificationError(ProviderClerk, KindInternal, err)
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token, JWK: jwk})
	if err != nil {
		return nil, newVerificationError(ProviderClerk, KindInvalidArgument, err)
	}
	if claims == nil {
		return nil, nil
	}

	return &Claims{
		UID:      claims.Subject,
		Issuer:   claims.Issuer,
		Provider: ProviderClerk,
		Custom: map[string]any{
			"session_id": claims.SessionID,
			"org_id":     claims.ActiveOrganizationID,
			"org_role":   claims.ActiveOrganizationRole,
		},
	}, nil
}
