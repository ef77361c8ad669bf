package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	"github.com/leadmarket/leadmarket/pkg/clock"
)

// tokenClaims is the claim set carried by marketplace auth tokens.
type tokenClaims struct {
	jwt.RegisteredClaims

	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
	UserType string `json:"userType,omitempty"`
}

// TokenResolver verifies HS256 signed auth tokens with a shared secret and
// extracts the identity attributes from their claims. It is the edge-path
// resolver: verification happens locally, no network calls.
type TokenResolver struct {
	secret []byte
	clock  clock.Clock
}

// NewTokenResolver constructs a TokenResolver for the given shared secret.
func NewTokenResolver(secret []byte) *TokenResolver {
	return &TokenResolver{secret: secret}
}

// Resolve verifies the token and normalizes its claims into an Identity.
// An empty credential resolves to a nil identity without error. Any
// verification failure (bad signature, expiry, malformed token) wraps
// ErrVerification.
func (t *TokenResolver) Resolve(_ context.Context, credential string) (*identityapi.Identity, error) {
	if credential == "" {
		return nil, nil
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token is invalid", ErrVerification)
	}

	return identityapi.Normalize(&identityapi.Attributes{
		ID:       claims.Subject,
		Email:    claims.Email,
		IsAdmin:  claims.IsAdmin,
		UserType: claims.UserType,
	}), nil
}

// TokenIssuer mints the auth tokens the TokenResolver verifies. It lives
// with the login handler, the gate itself never issues credentials.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewTokenIssuer constructs a TokenIssuer signing with the given secret and
// bounding token lifetime to ttl.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the identity's attributes.
func (i *TokenIssuer) Issue(id *identityapi.Identity) (string, error) {
	if id == nil {
		return "", fmt.Errorf("cannot issue a token for a nil identity")
	}

	now := i.clock.Now()
	claims := &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email:   id.Email,
		IsAdmin: id.IsAdmin,
	}
	if id.Role != nil {
		claims.UserType = string(*id.Role)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}
	return signed, nil
}
