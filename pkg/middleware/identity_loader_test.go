package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/identity"
)

// fakeResolver records the credential it was asked about and replies with a
// canned identity or error.
type fakeResolver struct {
	identity   *identityapi.Identity
	err        error
	credential string
	calls      int
}

func (f *fakeResolver) Resolve(_ context.Context, credential string) (*identityapi.Identity, error) {
	f.credential = credential
	f.calls++
	return f.identity, f.err
}

var _ = Describe("Identity Loader Suite", func() {
	const cookieName = "token"

	var resolver *fakeResolver
	var scope *middlewareapi.RequestScope
	var request *http.Request
	var rw *httptest.ResponseRecorder
	var nextCalled bool

	BeforeEach(func() {
		resolver = &fakeResolver{}
		scope = &middlewareapi.RequestScope{}
		nextCalled = false

		var err error
		request, err = http.NewRequest("GET", "/dashboard", nil)
		Expect(err).ToNot(HaveOccurred())
		request = middlewareapi.AddRequestScope(request, scope)

		rw = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		handler := NewIdentityLoader(resolver, cookieName)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			nextCalled = true
		}))
		handler.ServeHTTP(rw, request)
	})

	Context("with no auth cookie", func() {
		It("resolves the empty credential", func() {
			Expect(resolver.calls).To(Equal(1))
			Expect(resolver.credential).To(BeEmpty())
		})

		It("leaves the scope unauthenticated and continues", func() {
			Expect(scope.Identity).To(BeNil())
			Expect(scope.IdentityError).ToNot(HaveOccurred())
			Expect(nextCalled).To(BeTrue())
		})
	})

	Context("with a valid auth cookie", func() {
		BeforeEach(func() {
			role := identityapi.RoleAffiliate
			resolver.identity = &identityapi.Identity{
				ID:    "u-1",
				Email: "affiliate@example.com",
				Role:  &role,
			}
			request.AddCookie(&http.Cookie{Name: cookieName, Value: "valid-token"})
		})

		It("passes the cookie value to the resolver", func() {
			Expect(resolver.credential).To(Equal("valid-token"))
		})

		It("stores the identity on the scope and continues", func() {
			Expect(scope.Identity).To(Equal(resolver.identity))
			Expect(scope.IdentityError).ToNot(HaveOccurred())
			Expect(nextCalled).To(BeTrue())
		})
	})

	Context("with a cookie that fails verification", func() {
		BeforeEach(func() {
			resolver.err = fmt.Errorf("parsing token: %w", identity.ErrVerification)
			request.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
		})

		It("records the failure on the scope and still continues", func() {
			Expect(scope.Identity).To(BeNil())
			Expect(scope.IdentityError).To(MatchError(identity.ErrVerification))
			Expect(nextCalled).To(BeTrue())
		})
	})

	Context("when an identity is already on the scope", func() {
		BeforeEach(func() {
			scope.Identity = &identityapi.Identity{Email: "existing@example.com"}
		})

		It("does not resolve again", func() {
			Expect(resolver.calls).To(BeZero())
			Expect(scope.Identity.Email).To(Equal("existing@example.com"))
			Expect(nextCalled).To(BeTrue())
		})
	})

	Context("with an unrelated cookie", func() {
		BeforeEach(func() {
			request.AddCookie(&http.Cookie{Name: "other", Value: "nope"})
		})

		It("resolves the empty credential", func() {
			Expect(resolver.credential).To(BeEmpty())
		})
	})
})
