// Package daemon serves the deal store over HTTP for local use and tests.
package daemon

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/remote"
)

// Server is the dealboard store daemon
type Server struct {
	store    database.DataStore
	token    string
	metrics  *Metrics
	listener net.Listener
	http     *http.Server

	shutdownGrace time.Duration
	shutdownOnce  sync.Once
}

// Option configures a Server
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every store request
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a server listening on addr. Use ":0" for an ephemeral port.
func NewServer(addr string, store database.DataStore, opts ...Option) (*Server, error) {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		store:         store,
		metrics:       NewMetrics(),
		listener:      listener,
		shutdownGrace: time.Duration(getEnvInt("DEALBOARD_DAEMON_SHUTDOWN_SECONDS", 5)) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routing table with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pipelines", s.handleListPipelines)
	mux.HandleFunc("GET /pipelines/{id}", s.handleGetPipeline)
	mux.HandleFunc("GET /deals", s.handleListDeals)
	mux.HandleFunc("GET /deals/{id}", s.handleGetDeal)
	mux.HandleFunc("PUT /deals/{id}", s.handleMoveDeal)

	root := http.NewServeMux()
	root.HandleFunc("GET /metrics", s.handleMetrics)
	root.Handle("/", s.authenticate(mux))

	return s.instrument(root)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "addr", s.Addr(), "auth", s.token != "")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("serve error", "error", err)
			_ = s.Shutdown()
			return err
		}
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server. Safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
		defer cancel()

		err = s.http.Shutdown(ctx)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		// Serve may never have run, in which case the listener is still ours
		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			slog.Debug("error closing listener", "error", closeErr)
		}
		slog.Info("daemon stopped", "requests", s.metrics.RequestsTotal.Load())
	})
	return err
}

// statusRecorder captures the response status for metrics and logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.IncRequests()
		s.metrics.InFlight.Add(1)
		defer s.metrics.InFlight.Add(-1)

		if id := r.Header.Get(remote.RequestIDHeader); id != "" {
			w.Header().Set(remote.RequestIDHeader, id)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= 400 {
			s.metrics.IncRequestErrors()
		}
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(remote.RequestIDHeader),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			s.metrics.IncAuthFailures()
			writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
