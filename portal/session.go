package portal

import (
	"context"
	"log/slog"
)

// DefaultPortalURL is the sharing API root used when no portal is configured.
const DefaultPortalURL = "https://www.arcgis.com/sharing/rest"

// Session is the per-request credential bundle passed into portal calls.
// A nil *Session means the request is unauthenticated and calls are made
// without a token. Sessions are never shared across requests and carry no
// mutable state.
type Session struct {
	// Portal is the sharing API base URL the token is valid for.
	Portal string

	token string
}

// SessionFromHeader derives a session from a raw authorization header value.
// An empty header yields nil (the unauthenticated case) and is not an error.
// The value is used verbatim as a portal token with no validation, expiry
// check, or refresh.
func SessionFromHeader(authorization, portalURL string) *Session {
	if authorization == "" {
		return nil
	}
	if portalURL == "" {
		portalURL = DefaultPortalURL
	}
	slog.Debug("Session derived from authorization header", "portal", portalURL)
	return &Session{
		Portal: portalURL,
		token:  authorization,
	}
}

// Token returns the literal header value the session was built from.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.token != ""
}

// sessionKey is the context key for the request session.
type sessionKey struct{}

// WithSession attaches a session to the context for the duration of one
// request's resolution. Resolvers read it back with SessionFromContext so
// credential state is an explicit per-request value, never a global.
func WithSession(ctx context.Context, s *Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the request session, or nil when the request
// is unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
