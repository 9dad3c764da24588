package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/service"
)

// LandingPath is the public destination unauthenticated navigations land on.
const LandingPath = "/landingpage"

// UnauthorizedPath is where authenticated-but-underprivileged navigations go.
// Distinct from LandingPath: the user is logged in, just not allowed here.
const UnauthorizedPath = "/unauthorized"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AuthServiceInterface defines the auth operations the HTTP layer needs.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, email, password string) (string, error)
	ResendCode(ctx context.Context, email, password string) (string, error)
	VerifyLogin(ctx context.Context, in service.VerifyInput) (domainauth.Session, error)
	GetSession(ctx context.Context, token string) (*domainauth.Session, error)
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, fields map[string]any) (domainauth.Identity, error)
}

// GateConfig groups the gate middleware's dependencies.
type GateConfig struct {
	Auth         AuthServiceInterface
	CookieDomain string
}

// RequireSession returns the navigation gate: it resolves the token cookie
// into a confirmed session before the destination renders.
//
// Per request it walks a small state machine:
//   - no token cookie: unauthenticated; browsers are redirected to the
//     landing destination, API calls get 401.
//   - token present, identity unconfirmed: the identity fetch runs inside
//     GetSession; nothing renders until it resolves.
//   - identity fetch rejected: the session is cleared (logout side effect),
//     the cookie is expired, and browsers go to the landing destination,
//     not the unauthorized page.
//   - otherwise the session is placed in the request context.
func RequireSession(cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := resolveSession(w, r, cfg)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// RequireRoles returns a gate that additionally checks the destination's
// allowed-role set. Role membership is checked as a set; list order carries
// no precedence. Failing the role check is a distinct outcome from failing
// authentication: browsers land on the unauthorized page, API calls get 403.
func RequireRoles(cfg GateConfig, allowed ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := resolveSession(w, r, cfg)
			if !ok {
				return
			}

			if !domainauth.HasRole(session.Identity, allowed...) {
				if IsBrowserRequest(r) {
					http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// resolveSession runs the token → session resolution shared by both gates.
// When it returns ok=false the response has already been written.
func resolveSession(w http.ResponseWriter, r *http.Request, cfg GateConfig) (*domainauth.Session, bool) {
	token := tokenFromRequest(r)
	if token == "" {
		denyUnauthenticated(w, r)
		return nil, false
	}

	session, err := cfg.Auth.GetSession(r.Context(), token)
	if err != nil {
		// The token is no longer good. The service already cleared the
		// server-side session; expire the cookie so the client agrees.
		clearTokenCookie(w, r, cfg.CookieDomain)
		denyUnauthenticated(w, r)
		return nil, false
	}

	return session, true
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, LandingPath, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// It sets a context value used by the gates to decide between redirects and
// JSON errors.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - API routes start with /api/
// 2. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}

	return strings.Contains(accept, "text/html")
}
