package middleware

import (
	"net/http"
	"time"

	"github.com/justinas/alice"

	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

// NewRequestLogger returns a middleware that emits one request log line per
// request via the logger package once the request completes.
func NewRequestLogger() alice.Constructor {
	return requestLogger
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		url := *req.URL
		start := time.Now()

		respLogger := &responseLogger{w: rw}
		next.ServeHTTP(respLogger, req)

		username := ""
		if scope := middlewareapi.GetRequestScope(req); scope != nil && scope.Identity != nil {
			username = scope.Identity.Email
		}

		logger.PrintReq(username, req, url, start, respLogger.Status(), respLogger.Size())
	})
}

// responseLogger is a wrapper of http.ResponseWriter that keeps track of its
// HTTP status code and body size.
type responseLogger struct {
	w      http.ResponseWriter
	status int
	size   int
}

// Header returns the ResponseWriter's Header
func (l *responseLogger) Header() http.Header {
	return l.w.Header()
}

// Write writes the response using the ResponseWriter
func (l *responseLogger) Write(b []byte) (int, error) {
	if l.status == 0 {
		// The status will be StatusOK if WriteHeader has not been called yet
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

// WriteHeader writes the status code for the Response
func (l *responseLogger) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

// Status returns the response status code
func (l *responseLogger) Status() int {
	if l.status == 0 {
		return http.StatusOK
	}
	return l.status
}

// Size returns the response size
func (l *responseLogger) Size() int {
	return l.size
}

// Flush sends any buffered data to the client
func (l *responseLogger) Flush() {
	if flusher, ok := l.w.(http.Flusher); ok {
		flusher.Flush()
	}
}
