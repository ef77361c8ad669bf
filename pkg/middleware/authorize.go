package middleware

import (
	"net/http"

	"github.com/justinas/alice"

	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/authorization"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

// NewAuthorize returns the edge gate: it evaluates the authorization engine
// for every request and enforces the verdict, passing allowed requests
// through and redirecting everything else. It expects the identity loader to
// have run first.
func NewAuthorize(engine authorization.Engine) alice.Constructor {
	a := &authorizer{engine: engine}
	return a.enforce
}

type authorizer struct {
	engine authorization.Engine
}

func (a *authorizer) enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		// Public paths bypass the gate entirely, even when a stale or
		// broken credential came along for the ride.
		if authorization.ClassifyPath(req.URL.Path) == authorization.PublicArea {
			next.ServeHTTP(rw, req)
			return
		}

		scope := middlewareapi.GetRequestScope(req)

		if scope.IdentityError != nil {
			// A credential was presented but failed verification. Same
			// destination as the unauthenticated case, distinct reason.
			redirect(rw, req, authorization.AuthenticationFailed())
			return
		}

		verdict := a.engine.Decide(authorization.Context{
			Path:     req.URL.Path,
			Identity: scope.Identity,
		})

		if verdict.Allowed() {
			next.ServeHTTP(rw, req)
			return
		}

		username := ""
		if scope.Identity != nil {
			username = scope.Identity.Email
		}
		logger.PrintAuthf(username, req, logger.AuthFailure, "Denied %s: %s", req.URL.Path, verdict)

		redirect(rw, req, verdict)
	})
}

func redirect(rw http.ResponseWriter, req *http.Request, verdict authorization.Verdict) {
	http.Redirect(rw, req, verdict.RedirectURL(nil).String(), http.StatusFound)
}
