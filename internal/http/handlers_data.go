package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BackendProxy is the slice of the backend client the data handlers need.
type BackendProxy interface {
	Forward(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error)
	ToggleClock(ctx context.Context, token string) (json.RawMessage, error)
	UserStats(ctx context.Context, token, userID string) (json.RawMessage, error)
	ClockState(ctx context.Context, token string) (json.RawMessage, error)
}

// DataHandlersOptions groups dependencies for DataHandlers.
type DataHandlersOptions struct {
	Backend BackendProxy
	Logger  *slog.Logger
}

// DataHandlers relays non-auth data traffic to the backend for sessions the
// gate has already confirmed. It never interprets the payloads; the backend
// stays authoritative for validation and authorization of the data itself.
type DataHandlers struct {
	backend BackendProxy
	logger  *slog.Logger
}

// NewDataHandlers constructs DataHandlers.
func NewDataHandlers(opts DataHandlersOptions) *DataHandlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandlers{backend: opts.Backend, logger: logger}
}

const maxProxyBody = 1 << 20

// ToggleClock handles POST /api/clocks/toggle for the current user.
func (h *DataHandlers) ToggleClock(w http.ResponseWriter, r *http.Request) {
	raw, err := h.backend.ToggleClock(r.Context(), tokenFromRequest(r))
	if err != nil {
		h.writeProxyError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, raw)
}

type dashboardResponse struct {
	Stats json.RawMessage `json:"stats"`
	Clock json.RawMessage `json:"clock"`
}

// Dashboard handles GET /api/dashboard: fetches the user's statistics and
// clock state concurrently and returns them as one payload, so the dashboard
// renders from a single round trip.
func (h *DataHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	token := tokenFromRequest(r)

	var resp dashboardResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		raw, err := h.backend.UserStats(ctx, token, identity.ID)
		if err != nil {
			return err
		}
		resp.Stats = raw
		return nil
	})
	g.Go(func() error {
		raw, err := h.backend.ClockState(ctx, token)
		if err != nil {
			return err
		}
		resp.Clock = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		h.writeProxyError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// Passthrough relays a request under /api/ to the same path on the backend,
// with the session's bearer token attached. The /api prefix is stripped and
// a trailing slash is added to match the backend's routing.
func (h *DataHandlers) Passthrough(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	var body json.RawMessage
	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBody))
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
			return
		}
		body = data
	}

	raw, err := h.backend.Forward(r.Context(), r.Method, path, tokenFromRequest(r), body)
	if err != nil {
		h.writeProxyError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, raw)
}

// writeProxyError maps a backend failure onto the response the SPA expects.
// The mapping is the same taxonomy the auth handlers use.
func (h *DataHandlers) writeProxyError(w http.ResponseWriter, err error) {
	writeServiceError(w, h.logger, err)
}

// writeRawJSON relays an already-encoded backend payload.
func writeRawJSON(w http.ResponseWriter, code int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	_, _ = w.Write(raw)
}
