package identity

import (
	"context"
	"fmt"
	"net/http"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	"github.com/leadmarket/leadmarket/pkg/requests"
)

// whoamiResponse is the payload shape of the current-user endpoint:
// {"user": {...}} when authenticated, {"user": null} otherwise.
type whoamiResponse struct {
	User *identityapi.Attributes `json:"user"`
}

// ClientResolver resolves identities by asking the whoami endpoint, the way
// a browser-side check would. It forwards the credential as the token cookie
// and trusts the endpoint's verdict on its validity.
type ClientResolver struct {
	endpoint   string
	cookieName string
	client     *http.Client
}

// NewClientResolver constructs a ClientResolver that queries endpoint, e.g.
// "https://leads.example.com/api/auth/me".
func NewClientResolver(endpoint, cookieName string) *ClientResolver {
	return &ClientResolver{
		endpoint:   endpoint,
		cookieName: cookieName,
		client:     http.DefaultClient,
	}
}

// WithHTTPClient overrides the http.Client used for the whoami call.
func (c *ClientResolver) WithHTTPClient(client *http.Client) *ClientResolver {
	c.client = client
	return c
}

// Resolve calls the whoami endpoint and normalizes the returned user. A null
// user maps to a nil identity without error. Transport or decode failures
// wrap ErrVerification: the caller cannot distinguish a broken endpoint from
// a bad credential and must fail closed either way.
func (c *ClientResolver) Resolve(ctx context.Context, credential string) (*identityapi.Identity, error) {
	builder := requests.New(c.endpoint).
		WithContext(ctx).
		WithClient(c.client).
		SetHeader("Accept", "application/json")

	if credential != "" {
		builder = builder.AddCookie(&http.Cookie{Name: c.cookieName, Value: credential})
	}

	var payload whoamiResponse
	if err := builder.Do().UnmarshalInto(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	return identityapi.Normalize(payload.User), nil
}
