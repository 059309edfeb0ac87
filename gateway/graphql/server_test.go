package graphql

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbouwman/graphql-api/metric"
	"github.com/dbouwman/graphql-api/portal"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := portal.NewClient(cfg.PortalURL, nil, logger)
	resolver := NewResolver(client, cfg, logger, nil)

	server, err := NewServer(cfg, resolver, metric.NewRegistry(), logger)
	require.NoError(t, err)
	require.NoError(t, server.Setup())
	return server
}

func TestNewServerRequiresResolver(t *testing.T) {
	_, err := NewServer(DefaultConfig(), nil, nil, nil)
	assert.Error(t, err)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = "graphql"
	_, err := NewServer(cfg, &Resolver{}, nil, nil)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, DefaultConfig())

	// Not started yet: unavailable
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	server.mu.Lock()
	server.running = true
	server.mu.Unlock()

	rec = httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, DefaultConfig())

	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, DefaultConfig())

	req := httptest.NewRequest("OPTIONS", "/graphql", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSOrigins = []string{"https://allowed.example.com"}
	server := newTestServer(t, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://other.example.com")
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware(t *testing.T) {
	server := newTestServer(t, DefaultConfig())

	var captured string
	inner := server.requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Generated when absent, and carried in the request context
	rec := httptest.NewRecorder()
	inner.ServeHTTP(rec, httptest.NewRequest("POST", "/graphql", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, rec.Header().Get("X-Request-Id"), captured)

	// Preserved when supplied
	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec = httptest.NewRecorder()
	inner.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "req-123", captured)
}

func TestRequestLoggerCorrelation(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-456")
	requestLogger(ctx, base).Info("resolved")

	assert.Contains(t, buf.String(), `"request_id":"req-456"`)

	// Without an id the logger is unchanged
	buf.Reset()
	requestLogger(context.Background(), base).Info("resolved")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestSessionMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	server := newTestServer(t, cfg)

	var captured *portal.Session
	inner := server.sessionMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = portal.SessionFromContext(r.Context())
	}))

	// Anonymous request carries no session
	inner.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/graphql", nil))
	assert.Nil(t, captured)

	// A token header becomes a session bound to the configured portal.
	// The value is used verbatim as the portal token.
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader("{}"))
	req.Header.Set("Authorization", "tok-abc")
	inner.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, captured)
	assert.Equal(t, "tok-abc", captured.Token())
	assert.Equal(t, cfg.PortalURL, captured.Portal)
}

func TestServerStopBeforeStart(t *testing.T) {
	server := newTestServer(t, DefaultConfig())
	assert.False(t, server.IsRunning())
	assert.NoError(t, server.Stop(0))
}
