// Package server exposes the joke store over HTTP. Routing and JSON mapping
// live here; validation of categories, types, and rating range happens at
// this boundary so the store only ever sees well-formed input.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jokebox/jokebox/pkg/logger"
	"github.com/jokebox/jokebox/pkg/types"
)

// Request limits mirrored from the service contract.
const (
	maxListLimit = 50
	minListLimit = 1
)

// Server is the HTTP front end over a Store.
type Server struct {
	addr  string
	store types.Store
	srv   *http.Server
}

// New creates a server bound to addr, serving the given store.
func New(addr string, store types.Store) *Server {
	s := &Server{addr: addr, store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /echo", s.handleEcho)
	mux.HandleFunc("GET /jokes", s.handleListJokes)
	mux.HandleFunc("POST /jokes", s.handleCreateJoke)
	mux.HandleFunc("GET /jokes/{id}", s.handleGetJoke)
	mux.HandleFunc("PUT /jokes/{id}/rating", s.handleRateJoke)
	mux.HandleFunc("DELETE /jokes/{id}", s.handleDeleteJoke)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route multiplexer, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	logger.Info("http server listening", logger.String("addr", s.addr))
	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
