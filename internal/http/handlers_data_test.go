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
	"github.com/timemanager/tm-ui-api/internal/adapters/timeapi"
)

// fakeProxy is a scripted BackendProxy for data handler tests.
type fakeProxy struct {
	forwardFunc    func(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error)
	toggleFunc     func(ctx context.Context, token string) (json.RawMessage, error)
	statsFunc      func(ctx context.Context, token, userID string) (json.RawMessage, error)
	clockStateFunc func(ctx context.Context, token string) (json.RawMessage, error)
}

var _ BackendProxy = (*fakeProxy)(nil)

func (f *fakeProxy) Forward(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error) {
	return f.forwardFunc(ctx, method, path, token, body)
}

func (f *fakeProxy) ToggleClock(ctx context.Context, token string) (json.RawMessage, error) {
	return f.toggleFunc(ctx, token)
}

func (f *fakeProxy) UserStats(ctx context.Context, token, userID string) (json.RawMessage, error) {
	return f.statsFunc(ctx, token, userID)
}

func (f *fakeProxy) ClockState(ctx context.Context, token string) (json.RawMessage, error) {
	return f.clockStateFunc(ctx, token)
}

func TestToggleClockRelaysBackendPayload(t *testing.T) {
	proxy := &fakeProxy{
		toggleFunc: func(_ context.Context, token string) (json.RawMessage, error) {
			assert.Equal(t, "tok-xyz", token)
			return json.RawMessage(`{"clocked_in":true}`), nil
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodPost, "/api/clocks/toggle", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok-xyz"})
	rec := httptest.NewRecorder()
	h.ToggleClock(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clocked_in":true}`, rec.Body.String())
}

func TestDashboardAggregatesStatsAndClock(t *testing.T) {
	proxy := &fakeProxy{
		statsFunc: func(_ context.Context, token, userID string) (json.RawMessage, error) {
			assert.Equal(t, "u-1", userID)
			return json.RawMessage(`{"hours_this_week":32.5}`), nil
		},
		clockStateFunc: func(context.Context, string) (json.RawMessage, error) {
			return json.RawMessage(`{"clocked_in":false}`), nil
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok-xyz"})
	r = r.WithContext(SetSessionInContext(r.Context(), employeeSession()))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Stats json.RawMessage `json:"stats"`
		Clock json.RawMessage `json:"clock"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, `{"hours_this_week":32.5}`, string(resp.Stats))
	assert.JSONEq(t, `{"clocked_in":false}`, string(resp.Clock))
}

func TestDashboardBackendFailure(t *testing.T) {
	proxy := &fakeProxy{
		statsFunc: func(context.Context, string, string) (json.RawMessage, error) {
			return nil, &timeapi.Error{Kind: timeapi.KindServer, Status: 500}
		},
		clockStateFunc: func(context.Context, string) (json.RawMessage, error) {
			return json.RawMessage(`{"clocked_in":false}`), nil
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), employeeSession()))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, r)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPassthroughStripsAPIPrefixAndAddsSlash(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody json.RawMessage
	proxy := &fakeProxy{
		forwardFunc: func(_ context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error) {
			gotMethod, gotPath = method, path
			gotBody = body
			assert.Equal(t, "tok-xyz", token)
			return json.RawMessage(`{"id":7}`), nil
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"name":"Night Shift"}`))
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "tok-xyz"})
	rec := httptest.NewRecorder()
	h.Passthrough(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/teams/", gotPath)
	assert.JSONEq(t, `{"name":"Night Shift"}`, string(gotBody))
}

func TestPassthroughPreservesQueryString(t *testing.T) {
	var gotPath string
	proxy := &fakeProxy{
		forwardFunc: func(_ context.Context, _, path, _ string, _ json.RawMessage) (json.RawMessage, error) {
			gotPath = path
			return json.RawMessage(`[]`), nil
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodGet, "/api/users?page=2", nil)
	rec := httptest.NewRecorder()
	h.Passthrough(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/users/?page=2", gotPath)
}

func TestPassthroughBackendRejection(t *testing.T) {
	proxy := &fakeProxy{
		forwardFunc: func(context.Context, string, string, string, json.RawMessage) (json.RawMessage, error) {
			return nil, &timeapi.Error{Kind: timeapi.KindBadRequest, Status: 400, Detail: "Name already taken."}
		},
	}
	h := NewDataHandlers(DataHandlersOptions{Backend: proxy})

	r := httptest.NewRequest(http.MethodPost, "/api/teams", strings.NewReader(`{"name":"dup"}`))
	rec := httptest.NewRecorder()
	h.Passthrough(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name already taken.")
}
