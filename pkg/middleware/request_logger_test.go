package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

var _ = Describe("Request Logger Suite", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		logger.SetOutput(buf)
	})

	AfterEach(func() {
		logger.SetOutput(GinkgoWriter)
	})

	serve := func(identity *identityapi.Identity, status int) {
		req, err := http.NewRequest("GET", "/dashboard/affiliate", nil)
		Expect(err).ToNot(HaveOccurred())
		req = middlewareapi.AddRequestScope(req, &middlewareapi.RequestScope{Identity: identity})

		rw := httptest.NewRecorder()
		handler := NewRequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("hello"))
		}))
		handler.ServeHTTP(rw, req)
	}

	It("logs the request path and status", func() {
		serve(nil, http.StatusOK)

		Expect(buf.String()).To(ContainSubstring("/dashboard/affiliate"))
		Expect(buf.String()).To(ContainSubstring("200"))
	})

	It("logs the authenticated user's email", func() {
		serve(&identityapi.Identity{Email: "affiliate@example.com"}, http.StatusOK)

		Expect(buf.String()).To(ContainSubstring("affiliate@example.com"))
	})

	It("logs redirect statuses", func() {
		serve(nil, http.StatusFound)

		Expect(buf.String()).To(ContainSubstring("302"))
	})
})
