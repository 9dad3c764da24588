package httpx

import (
	"context"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the session from the request context, or
// nil when the request is unauthenticated. Handlers must read identity from
// here every time; caching it across requests is how stale-role bugs happen.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && s != nil {
		return s
	}
	return nil
}

// IdentityFromContext returns the confirmed identity for the request, or nil.
func IdentityFromContext(ctx context.Context) *domainauth.Identity {
	if s := GetSessionFromContext(ctx); s != nil {
		return s.Identity
	}
	return nil
}
