package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leadmarket/leadmarket/pkg/logger"
)

// Server serves HTTP traffic for a handler and shuts down gracefully on
// SIGINT or SIGTERM.
type Server struct {
	Handler http.Handler
	Addr    string
}

// ListenAndServe serves until the context is cancelled or a termination
// signal arrives, then drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	logger.Printf("HTTP: listening on %s", listener.Addr())

	srv := &http.Server{
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Print("HTTP: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Printf("HTTP: closed %s", listener.Addr())
	return nil
}
