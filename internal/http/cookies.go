package httpx

import (
	"net/http"
	"strings"
)

// TokenCookieName is the durable side channel for the bearer token. The SPA
// reads it for store rehydration, so it is deliberately not HttpOnly.
const TokenCookieName = "token"

// tokenCookieMaxAge is 7 days, matching the server-side session TTL.
const tokenCookieMaxAge = 604800

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setTokenCookie writes the bearer token cookie: path root, 7-day max age,
// strict same-site, secure over encrypted transport.
func setTokenCookie(w http.ResponseWriter, r *http.Request, domain, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   domain,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   tokenCookieMaxAge,
	})
}

// clearTokenCookie expires the token cookie immediately, mirroring the
// attributes used when setting it for cross-browser deletion.
func clearTokenCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// tokenFromRequest returns the bearer token from the cookie, or "".
func tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
