// Package identity resolves raw credentials into identity values for the
// authorization engine. Two resolvers exist: TokenResolver verifies a signed
// token locally (the edge path) and ClientResolver asks the whoami endpoint
// (the client path). The engine itself is resolver-agnostic.
package identity

import (
	"context"
	"errors"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
)

// ErrVerification marks a credential that was present but could not be
// verified or parsed. Callers translate it into the authentication-failed
// login redirect, they must never let it crash a request.
var ErrVerification = errors.New("credential verification failed")

// Resolver turns a raw credential into an identity.
//
// The contract distinguishes three outcomes:
//   - (identity, nil): the credential verified, treat the request as
//     authenticated with the returned attributes.
//   - (nil, nil): no credential or no user, treat as unauthenticated.
//   - (nil, err): a credential was present but could not be verified, err
//     wraps ErrVerification.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*identityapi.Identity, error)
}
