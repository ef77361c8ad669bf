package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/authorization"
	"github.com/leadmarket/leadmarket/pkg/identity"
)

var _ = Describe("Authorize Suite", func() {
	type authorizeTableInput struct {
		path             string
		identity         *identityapi.Identity
		identityError    error
		expectedStatus   int
		expectedLocation string
	}

	withRole := func(role identityapi.Role) *identityapi.Identity {
		return &identityapi.Identity{ID: "u-1", Email: "user@example.com", Role: &role}
	}

	DescribeTable("when serving a request",
		func(in authorizeTableInput) {
			req, err := http.NewRequest("GET", in.path, nil)
			Expect(err).ToNot(HaveOccurred())

			scope := &middlewareapi.RequestScope{
				Identity:      in.identity,
				IdentityError: in.identityError,
			}
			req = middlewareapi.AddRequestScope(req, scope)

			rw := httptest.NewRecorder()
			handler := NewAuthorize(authorization.NewEngine())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rw, req)

			Expect(rw.Code).To(Equal(in.expectedStatus))
			if in.expectedLocation != "" {
				Expect(rw.Header().Get("Location")).To(Equal(in.expectedLocation))
			}
		},
		Entry("allows a public path with no identity", authorizeTableInput{
			path:           "/",
			expectedStatus: http.StatusOK,
		}),
		Entry("allows a public path even with a broken credential", authorizeTableInput{
			path:           "/api/auth/me",
			identityError:  fmt.Errorf("parsing token: %w", identity.ErrVerification),
			expectedStatus: http.StatusOK,
		}),
		Entry("redirects an anonymous user away from the dashboard", authorizeTableInput{
			path:             "/dashboard",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/auth/login?message=please%20login%20first",
		}),
		Entry("redirects an anonymous user away from the admin area", authorizeTableInput{
			path:             "/admin/users",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/auth/login?message=please%20login%20first",
		}),
		Entry("redirects to login when verification failed", authorizeTableInput{
			path:             "/dashboard",
			identityError:    fmt.Errorf("parsing token: %w", identity.ErrVerification),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/auth/login?message=Authentication%20failed",
		}),
		Entry("bounces a non-admin off the admin area", authorizeTableInput{
			path:             "/admin",
			identity:         withRole(identityapi.RoleAffiliate),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/auth/login?message=Admin%20access%20only",
		}),
		Entry("lets an admin into the admin area", authorizeTableInput{
			path:           "/admin/users",
			identity:       &identityapi.Identity{ID: "a-1", Email: "admin@example.com", IsAdmin: true},
			expectedStatus: http.StatusOK,
		}),
		Entry("sends an admin from the dashboard root to the admin home", authorizeTableInput{
			path:             "/dashboard",
			identity:         &identityapi.Identity{ID: "a-1", Email: "admin@example.com", IsAdmin: true},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/admin",
		}),
		Entry("sends an affiliate from the dashboard root to their home", authorizeTableInput{
			path:             "/dashboard",
			identity:         withRole(identityapi.RoleAffiliate),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/dashboard/affiliate",
		}),
		Entry("lets an affiliate into the affiliate area", authorizeTableInput{
			path:           "/dashboard/affiliate/leads",
			identity:       withRole(identityapi.RoleAffiliate),
			expectedStatus: http.StatusOK,
		}),
		Entry("moves an advertiser out of the affiliate area", authorizeTableInput{
			path:             "/dashboard/affiliate",
			identity:         withRole(identityapi.RoleAdvertiser),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/dashboard/advertiser",
		}),
		Entry("moves an affiliate out of the advertiser area", authorizeTableInput{
			path:             "/dashboard/advertiser/leads/new",
			identity:         withRole(identityapi.RoleAffiliate),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/dashboard/affiliate",
		}),
		Entry("bounces a roleless user off the dashboard", authorizeTableInput{
			path:             "/dashboard/settings",
			identity:         &identityapi.Identity{ID: "u-2", Email: "limbo@example.com"},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/auth/login?message=Role%20not%20assigned",
		}),
	)
})
