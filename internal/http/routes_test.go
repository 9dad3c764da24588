package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
)

func newTestRouter(auth AuthServiceInterface, proxy BackendProxy) http.Handler {
	return NewRouter(RouterOptions{Auth: auth, Backend: proxy})
}

func TestRouterPublicDestinations(t *testing.T) {
	router := newTestRouter(&fakeAuth{}, &fakeProxy{})

	for _, path := range []string{"/landingpage", "/unauthorized", "/login", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserRequest(path, ""))
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestRouterGatedPageWithoutSession(t *testing.T) {
	router := newTestRouter(&fakeAuth{}, &fakeProxy{})

	for _, path := range []string{"/dashboard", "/clock", "/rules", "/settings", "/profile", "/"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, browserRequest(path, ""))
		assert.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		assert.Equal(t, LandingPath, rec.Header().Get("Location"), "path %s", path)
	}
}

func TestRouterGatedPageWithSession(t *testing.T) {
	auth := &fakeAuth{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return employeeSession(), nil
		},
	}
	router := newTestRouter(auth, &fakeProxy{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, browserRequest("/dashboard", "tok-xyz"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-page="dashboard"`)
}

func TestRouterManagerSubtreeDeniedForEmployee(t *testing.T) {
	auth := &fakeAuth{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return employeeSession(), nil
		},
	}
	router := newTestRouter(auth, &fakeProxy{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, browserRequest("/manager/teams", "tok-xyz"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, UnauthorizedPath, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, apiRequest("/api/teams", "tok-xyz"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterPatchUsersMeBeatsUserSubtree(t *testing.T) {
	// PATCH /api/users/me is the session's own profile edit, open to any
	// role; it must not fall into the manager-gated /api/users/ subtree.
	auth := &fakeAuth{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return employeeSession(), nil
		},
		updateProfileFunc: func(_ context.Context, _ string, fields map[string]any) (domainauth.Identity, error) {
			identity := *employeeSession().Identity
			identity.LastName = fields["lastname"].(string)
			return identity, nil
		},
	}
	router := newTestRouter(auth, &fakeProxy{})

	r := httptest.NewRequest(http.MethodPatch, "/api/users/me", strings.NewReader(`{"lastname":"Smith"}`))
	r.Header.Set("Accept", "application/json")
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok-xyz"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var identity domainauth.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, "Smith", identity.LastName)
}

func TestRouterUsersMeEndToEnd(t *testing.T) {
	auth := &fakeAuth{
		getSessionFunc: func(_ context.Context, token string) (*domainauth.Session, error) {
			assert.Equal(t, "tok-xyz", token)
			return employeeSession(), nil
		},
	}
	router := newTestRouter(auth, &fakeProxy{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, apiRequest("/api/users/me", "tok-xyz"))

	require.Equal(t, http.StatusOK, rec.Code)
	var identity domainauth.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, "jane@example.com", identity.Email)
}

func TestRouterManagerDataForManager(t *testing.T) {
	auth := &fakeAuth{
		getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
			return managerSession(), nil
		},
	}
	proxy := &fakeProxy{
		forwardFunc: func(_ context.Context, _, path, _ string, _ json.RawMessage) (json.RawMessage, error) {
			assert.Equal(t, "/teams/", path)
			return json.RawMessage(`[]`), nil
		},
	}
	router := newTestRouter(auth, proxy)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, apiRequest("/api/teams", "tok-xyz"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
