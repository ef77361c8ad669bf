package middleware

import (
	"net/http"

	"github.com/justinas/alice"

	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/identity"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

// NewIdentityLoader returns a middleware that resolves the auth token cookie
// into an identity on the request scope. It only loads, enforcement is the
// authorize middleware's concern: requests without a credential or with a bad
// one pass through with a nil identity, the failure recorded on the scope.
func NewIdentityLoader(resolver identity.Resolver, cookieName string) alice.Constructor {
	l := &identityLoader{
		resolver:   resolver,
		cookieName: cookieName,
	}
	return l.loadIdentity
}

type identityLoader struct {
	resolver   identity.Resolver
	cookieName string
}

func (l *identityLoader) loadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		scope := middlewareapi.GetRequestScope(req)
		// If scope is nil, this will panic.
		// A scope should always be injected before this handler is called.
		if scope.Identity != nil {
			// The identity was already loaded, pass to the next handler
			next.ServeHTTP(rw, req)
			return
		}

		credential := ""
		if cookie, err := req.Cookie(l.cookieName); err == nil {
			credential = cookie.Value
		}

		id, err := l.resolver.Resolve(req.Context(), credential)
		if err != nil {
			logger.PrintAuthf("", req, logger.AuthError, "Error verifying auth token: %v", err)
			scope.IdentityError = err
		}

		scope.Identity = id
		next.ServeHTTP(rw, req)
	})
}
