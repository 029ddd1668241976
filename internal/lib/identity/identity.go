// Package identity verifies caller ID tokens against an external identity
// provider.
//
// Providers report failures through *VerificationError so callers can
// choose a response from the ErrorKind without knowing how a provider
// encodes its errors.
package identity

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a token could not be verified.
type ErrorKind int

const (
	// KindInternal covers provider outages, key fetch failures and anything
	// unclassified.
	KindInternal ErrorKind = iota

	// KindInvalidArgument means the provider rejected the token itself:
	// malformed, bad signature, wrong audience or issuer.
	KindInvalidArgument

	// KindExpired means the token was well formed but past its expiry.
	KindExpired

	// KindRevoked means the token was valid but has since been revoked.
	KindRevoked
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindExpired:
		return "expired"
	case KindRevoked:
		return "revoked"
	default:
		return "internal"
	}
}

// VerificationError is returned by every Verifier on failure.
type VerificationError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s token verification failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

func newVerificationError(provider string, kind ErrorKind, err error) *VerificationError {
	return &VerificationError{Kind: kind, Provider: provider, Err: errors.WithStack(err)}
}

// KindOf returns the ErrorKind of err, or KindInternal when err is not a
// *VerificationError.
func KindOf(err error) ErrorKind {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return KindInternal
}

// Claims is the provider-independent view of a verified token.
type Claims struct {
	// UID is the subject the token was issued to.
	UID      string
	Issuer   string
	Audience string
	Provider string

	// Custom holds any remaining provider claims.
	Custom map[string]any
}

// Verifier checks a bearer token.
//
// A nil *Claims with a nil error means the provider accepted the call but
// produced no identity; callers treat that as an invalid token.
type Verifier interface {
	VerifyIDToken(ctx context.Context, token string) (*Claims, error)
	Name() string
}
