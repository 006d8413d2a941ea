package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/interactome/biographdb/pkg/engine"
	"github.com/interactome/biographdb/pkg/metrics"
)

// Server holds the HTTP interface and the underlying query engine.
type Server struct {
	Engine *engine.Engine

	httpServer *http.Server
	authToken  string
}

// NewServer initializes the HTTP server using an existing Engine.
// Note: The Engine must be initialized (Open) before passing it here.
func NewServer(eng *engine.Engine, httpAddr, authToken string) *Server {
	s := &Server{
		Engine:    eng,
		authToken: authToken,
	}

	// Graph dimensions are fixed after load; publish them once.
	metrics.GraphNodes.Set(float64(eng.Graph.Len()))
	metrics.GraphEdges.Set(float64(eng.Graph.NumEdges()))

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux
	// Order matters! Recovery must be outer-most to catch everything.

	var handler http.Handler = mux

	// 1. Auth (Inner)
	handler = s.authMiddleware(handler)

	// 2. Logging (Middle) - Logs duration and status
	handler = s.LoggingMiddleware(handler)

	// 3. Recovery (Outer) - Catches panics
	handler = s.RecoveryMiddleware(handler)

	// healthz and metrics stay outside the auth chain.
	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: rootMux,
	}
	return s
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() {
	log.Println("Starting graceful shutdown of HTTP Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
