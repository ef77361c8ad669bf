package middleware

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
)

var _ = Describe("Scope Suite", func() {
	Context("NewScope", func() {
		var request, nextRequest *http.Request
		var rw http.ResponseWriter

		BeforeEach(func() {
			var err error
			request, err = http.NewRequest("GET", "http://example.com/foo", nil)
			Expect(err).ToNot(HaveOccurred())

			rw = httptest.NewRecorder()
		})

		JustBeforeEach(func() {
			handler := NewScope("X-Request-Id")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				nextRequest = r
			}))
			handler.ServeHTTP(rw, request)
		})

		It("injects a scope into the request context", func() {
			Expect(middlewareapi.GetRequestScope(nextRequest)).ToNot(BeNil())
		})

		It("generates a request ID", func() {
			scope := middlewareapi.GetRequestScope(nextRequest)
			Expect(scope.RequestID).ToNot(BeEmpty())
		})

		It("starts with no identity", func() {
			scope := middlewareapi.GetRequestScope(nextRequest)
			Expect(scope.Identity).To(BeNil())
			Expect(scope.IdentityError).ToNot(HaveOccurred())
		})

		Context("when the request already carries a request ID header", func() {
			BeforeEach(func() {
				request.Header.Set("X-Request-Id", "11111111-2222-4333-8444-555555555555")
			})

			It("uses the value from the header", func() {
				scope := middlewareapi.GetRequestScope(nextRequest)
				Expect(scope.RequestID).To(Equal("11111111-2222-4333-8444-555555555555"))
			})
		})
	})
})
