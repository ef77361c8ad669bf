package middleware

import (
	"context"
	"net/http"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
)

// RequestScope contains information regarding the request that is being made.
// The RequestScope is used to pass information between different middlewares
// within the chain.
type RequestScope struct {
	// RequestID is set to a unique identifier for the request.
	// This is a randomly generated UUID unless the incoming request already
	// carries an ID header.
	RequestID string

	// Identity details the authenticated user's attributes, if a valid
	// credential accompanied the request. Nil when the request is
	// unauthenticated.
	Identity *identityapi.Identity

	// IdentityError records a credential that was present but failed
	// verification. The gate translates it into the authentication-failed
	// redirect, it is never surfaced as a crash.
	IdentityError error
}

type scopeKey string

// RequestScopeKey uniquely identifies the RequestScope value in the request
// context.
const RequestScopeKey scopeKey = "request-scope"

// AddRequestScope adds a RequestScope to a request.
func AddRequestScope(req *http.Request, scope *RequestScope) *http.Request {
	ctx := context.WithValue(req.Context(), RequestScopeKey, scope)
	return req.WithContext(ctx)
}

// GetRequestScope returns the current request scope from the given request.
func GetRequestScope(req *http.Request) *RequestScope {
	scope := req.Context().Value(RequestScopeKey)
	if scope == nil {
		return nil
	}

	return scope.(*RequestScope)
}
