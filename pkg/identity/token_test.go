package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func advertiserIdentity() *identityapi.Identity {
	role := identityapi.RoleAdvertiser
	return &identityapi.Identity{
		ID:    "user-42",
		Email: "ads@example.com",
		Role:  &role,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	resolver := NewTokenResolver(testSecret)

	token, err := issuer.Issue(advertiserIdentity())
	require.NoError(t, err)

	id, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "user-42", id.ID)
	assert.Equal(t, "ads@example.com", id.Email)
	assert.False(t, id.IsAdmin)
	assert.True(t, id.HasRole(identityapi.RoleAdvertiser))
}

func TestTokenRoundTripAdminWithoutRole(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	resolver := NewTokenResolver(testSecret)

	token, err := issuer.Issue(&identityapi.Identity{ID: "admin-1", Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)

	id, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.True(t, id.IsAdmin)
	assert.Nil(t, id.Role)
}

func TestResolveEmptyCredential(t *testing.T) {
	resolver := NewTokenResolver(testSecret)

	id, err := resolver.Resolve(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, id)
}

func TestResolveRejectsBadSignature(t *testing.T) {
	issuer := NewTokenIssuer([]byte("another-secret-entirely-not-ours"), time.Hour)
	resolver := NewTokenResolver(testSecret)

	token, err := issuer.Issue(advertiserIdentity())
	require.NoError(t, err)

	id, err := resolver.Resolve(context.Background(), token)
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestResolveRejectsMalformedToken(t *testing.T) {
	resolver := NewTokenResolver(testSecret)

	id, err := resolver.Resolve(context.Background(), "not-a-token")
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	now := time.Unix(1700000000, 0)

	issuer := NewTokenIssuer(testSecret, time.Hour)
	issuer.clock.Set(now)

	token, err := issuer.Issue(advertiserIdentity())
	require.NoError(t, err)

	resolver := NewTokenResolver(testSecret)

	// Still valid just before expiry
	resolver.clock.Set(now.Add(59 * time.Minute))
	id, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, id)

	// Expired afterwards
	resolver.clock.Set(now.Add(2 * time.Hour))
	id, err = resolver.Resolve(context.Background(), token)
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestIssueNilIdentity(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.Issue(nil)
	assert.Error(t, err)
}
