package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/propscore/internal/interfaces/http/handlers"
	"github.com/sawpanic/propscore/internal/metrics"
	"github.com/sawpanic/propscore/internal/net/ratelimit"
	"github.com/sawpanic/propscore/internal/scoring"
)

// Server represents the scoring HTTP server
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *handlers.Handlers
	metrics  *metrics.Registry
	limiter  *ratelimit.Limiter
	config   ServerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host             string
	Port             int
	Version          string
	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitIdleTTL time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:             "127.0.0.1", // Local-only by default
		Port:             8080,
		Version:          "dev",
		RateLimitRPS:     20,
		RateLimitBurst:   40,
		RateLimitIdleTTL: ratelimit.DefaultIdleTTL,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     10 * time.Second,
		IdleTimeout:      60 * time.Second,
	}
}

// NewServer creates a new HTTP server instance around scorer
func NewServer(config ServerConfig, scorer *scoring.Scorer, reg *metrics.Registry) (*Server, error) {
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	addr := net.JoinHostPort(config.Host, fmt.Sprint(config.Port))
	limiter := ratelimit.NewLimiter(config.RateLimitRPS, config.RateLimitBurst)

	server := &Server{
		router:   mux.NewRouter(),
		handlers: handlers.NewHandlers(scorer, reg, limiter, config.Version),
		metrics:  reg,
		limiter:  limiter,
		config:   config,
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         addr,
		Handler:      server.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.rateLimitMiddleware)

	// Prometheus exposition stays text/plain
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.jsonContentTypeMiddleware)

	api.HandleFunc("/health", s.handlers.Health).Methods("GET")
	api.HandleFunc("/weights", s.handlers.Weights).Methods("GET")
	api.HandleFunc("/score", s.handlers.Score).Methods("POST")

	// mux skips router middleware for unmatched requests
	s.router.NotFoundHandler = s.withMiddleware(http.HandlerFunc(s.handlers.NotFound))
	s.router.MethodNotAllowedHandler = s.withMiddleware(http.HandlerFunc(s.handlers.MethodNotAllowed))
}

// withMiddleware applies the router chain to a handler mux calls directly
func (s *Server) withMiddleware(h http.Handler) http.Handler {
	return s.requestIDMiddleware(
		s.requestLoggingMiddleware(
			s.rateLimitMiddleware(
				s.jsonContentTypeMiddleware(h))))
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestIDMiddleware adds unique request ID to each request
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(handlers.WithRequestID(r.Context(), requestID)))
	})
}

// requestLoggingMiddleware logs all requests and records their duration
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		s.metrics.ObserveRequest(routeName(r), wrapper.statusCode, duration)

		log.Info().
			Str("request_id", handlers.RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", duration).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

// rateLimitMiddleware applies a token bucket per client IP
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			s.handlers.TooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentTypeMiddleware sets JSON content type for API responses
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("address %s is busy or unavailable: %w", s.server.Addr, err)
	}

	log.Info().Str("addr", listener.Addr().String()).Msg("starting HTTP server")

	pruneCtx, stopPruning := context.WithCancel(ctx)
	defer stopPruning()
	go s.limiter.Run(pruneCtx, s.config.RateLimitIdleTTL/2, s.config.RateLimitIdleTTL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// responseWrapper captures response status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
