package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/google/uuid"
	gographql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/dbouwman/graphql-api/errors"
	"github.com/dbouwman/graphql-api/metric"
	"github.com/dbouwman/graphql-api/portal"
)

// maxParallelism caps concurrent field resolution within one query.
// Sibling relation fields fan out to the portal concurrently; this bounds
// the fan-out per request.
const maxParallelism = 20

// Server manages the HTTP server for the GraphQL endpoint
type Server struct {
	config     Config
	schema     *gographql.Schema
	registry   *metric.Registry
	logger     *slog.Logger
	httpServer *http.Server
	mux        *http.ServeMux

	// Lifecycle
	running  bool
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once // Ensures stopChan is closed exactly once
}

// NewServer creates a new GraphQL HTTP server around the query root
func NewServer(config Config, resolver *Resolver, registry *metric.Registry, logger *slog.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "Server", "NewServer", "config validation")
	}

	if resolver == nil {
		return nil, errors.WrapFatal(fmt.Errorf("resolver is nil"), "Server", "NewServer",
			"resolver is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	schema, err := gographql.ParseSchema(Schema, resolver,
		gographql.MaxParallelism(maxParallelism))
	if err != nil {
		return nil, errors.WrapFatal(err, "Server", "NewServer", "schema parsing")
	}

	return &Server{
		config:   config,
		schema:   schema,
		registry: registry,
		logger:   logger,
		mux:      http.NewServeMux(),
		stopChan: make(chan struct{}),
	}, nil
}

// SchemaHandle exposes the parsed schema for in-process execution in tests
func (s *Server) SchemaHandle() *gographql.Schema {
	return s.schema
}

// Setup configures the HTTP server and routes
func (s *Server) Setup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Health check endpoint
	s.mux.HandleFunc("/health", s.handleHealth)

	// Prometheus scrape endpoint
	if s.registry != nil {
		s.mux.Handle("/metrics", s.registry.Handler())
	}

	// GraphQL endpoint with per-request plumbing
	var graphqlHandler http.Handler = &relay.Handler{Schema: s.schema}
	graphqlHandler = s.sessionMiddleware(graphqlHandler)
	graphqlHandler = s.requestIDMiddleware(graphqlHandler)
	s.mux.Handle(s.config.Path, graphqlHandler)

	// GraphQL Playground (if enabled)
	if s.config.EnablePlayground {
		s.mux.Handle("/", playground.Handler("GraphQL Playground", s.config.Path))
		s.logger.Info("GraphQL Playground enabled",
			"url", fmt.Sprintf("http://%s/", s.config.BindAddress))
	}

	// CORS middleware wrapper
	var handler http.Handler = s.mux
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         s.config.BindAddress,
		Handler:      handler,
		ReadTimeout:  s.config.Timeout(),
		WriteTimeout: s.config.Timeout(),
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Server configured",
		"address", s.config.BindAddress,
		"path", s.config.Path,
		"timeout", s.config.Timeout())

	return nil
}

// Start starts the HTTP server
// The ready channel is closed when the server is ready to accept connections
func (s *Server) Start(ctx context.Context, ready chan<- struct{}) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Server", "Start", "server already running")
	}
	s.running = true
	server := s.httpServer
	s.mu.Unlock()

	// Start HTTP server in goroutine
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan) // Signal goroutine exit
		s.logger.Info("Server starting", "address", s.config.BindAddress)

		// Signal ready when server starts listening
		// Note: ListenAndServe blocks after binding the socket,
		// so we signal ready immediately before the call
		if ready != nil {
			close(ready)
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
			// Non-blocking send - ensures goroutine doesn't leak if select is on another case
			select {
			case errChan <- err:
			case <-ctx.Done():
				// Context cancelled, exit gracefully
			case <-s.stopChan:
				// Stop called, exit gracefully
			}
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Server context cancelled, shutting down")
		return s.Stop(30 * time.Second)

	case <-s.stopChan:
		s.logger.Info("Server stop requested")
		return nil

	case err := <-errChan:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Start", "HTTP server failed")
	}
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil // Already stopped
	}
	server := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Server stopping")

	// Signal stop channel (idempotent - safe to call multiple times)
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := server.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shutdown server gracefully", "error", err)
		return errors.WrapTransient(err, "Server", "Stop", "graceful shutdown failed")
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Server stopped")
	return nil
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()

	if !running {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// sessionMiddleware derives a portal session from the Authorization
// header and stores it in the request context. Anonymous requests carry
// no session and resolve against public content only.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := portal.SessionFromHeader(r.Header.Get("Authorization"), s.config.PortalURL)
		if session != nil {
			r = r.WithContext(portal.WithSession(r.Context(), session))
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDKey is the context key for the request correlation id.
type requestIDKey struct{}

// RequestIDFromContext returns the request correlation id, empty when the
// request entered outside the HTTP middleware chain.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestLogger decorates a logger with the request correlation id so
// resolver log lines can be tied back to one request.
func requestLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return base.With("request_id", id)
	}
	return base
}

// requestIDMiddleware tags each request with an id for log correlation.
// The id travels in the request context and is echoed in the response.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range s.config.CORSOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
