package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
)

// RouterOptions groups dependencies for NewRouter.
type RouterOptions struct {
	Auth         AuthServiceInterface
	Backend      BackendProxy
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter builds the full route table. Destinations fall into three tiers:
// public, any confirmed session, and manager-scoped. The gates enforce the
// tiers; handlers behind a gate can assume a confirmed session in context.
func NewRouter(opts RouterOptions) http.Handler {
	authHandlers := NewAuthHandlers(AuthHandlersOptions{
		Auth:         opts.Auth,
		CookieDomain: opts.CookieDomain,
		Logger:       opts.Logger,
	})
	dataHandlers := NewDataHandlers(DataHandlersOptions{
		Backend: opts.Backend,
		Logger:  opts.Logger,
	})

	gate := GateConfig{Auth: opts.Auth, CookieDomain: opts.CookieDomain}
	requireSession := RequireSession(gate)
	requireManager := RequireRoles(gate, domainauth.RoleManager, domainauth.RoleCompanyAdmin)

	mux := http.NewServeMux()

	// Public destinations: reachable with no session at all.
	mux.HandleFunc("GET /healthz", Healthz)
	mux.Handle("GET /landingpage", PageHandler("landing", "Welcome"))
	mux.Handle("GET /unauthorized", PageHandler("unauthorized", "Access Denied"))
	mux.Handle("GET /login", PageHandler("login", "Sign In"))
	mux.HandleFunc("POST /api/login/init", authHandlers.LoginInit)
	mux.HandleFunc("POST /api/login/resend", authHandlers.LoginResend)
	mux.HandleFunc("POST /api/login/verify", authHandlers.LoginVerify)
	mux.HandleFunc("POST /api/logout", authHandlers.Logout)

	// Any confirmed session.
	for _, p := range []struct{ name, title string }{
		{"dashboard", "Dashboard"},
		{"clock", "Clock"},
		{"rules", "Working Time Rules"},
		{"settings", "Settings"},
		{"profile", "Profile"},
	} {
		mux.Handle("GET /"+p.name, requireSession(PageHandler(p.name, p.title)))
	}
	mux.Handle("GET /api/users/me", requireSession(http.HandlerFunc(authHandlers.Me)))
	mux.Handle("PATCH /api/users/me", requireSession(http.HandlerFunc(authHandlers.UpdateMe)))
	mux.Handle("POST /api/clocks/toggle", requireSession(http.HandlerFunc(dataHandlers.ToggleClock)))
	mux.Handle("GET /api/dashboard", requireSession(http.HandlerFunc(dataHandlers.Dashboard)))

	// Manager-scoped destinations and data. Team and user administration is
	// relayed to the backend, which re-checks the role on its side.
	mux.Handle("GET /manager/", requireManager(PageHandler("manager", "Team Management")))
	passthrough := http.HandlerFunc(dataHandlers.Passthrough)
	mux.Handle("/api/teams", requireManager(passthrough))
	mux.Handle("/api/teams/", requireManager(passthrough))
	mux.Handle("/api/users", requireManager(passthrough))
	// More specific /api/users/me patterns above win over this subtree.
	mux.Handle("/api/users/", requireManager(passthrough))

	// Root navigations go to the dashboard; the gate sends logged-out
	// visitors to the landing page from there.
	mux.Handle("GET /{$}", requireSession(PageHandler("dashboard", "Dashboard")))

	var handler http.Handler = mux
	handler = BrowserDetection()(handler)
	if opts.Logger != nil {
		handler = Logging(opts.Logger)(handler)
		handler = Recover(opts.Logger)(handler)
	}
	return handler
}
