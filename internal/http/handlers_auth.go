package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/timemanager/tm-ui-api/internal/adapters/timeapi"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/service"
)

// AuthHandlersOptions groups dependencies for AuthHandlers.
type AuthHandlersOptions struct {
	Auth         AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

// AuthHandlers owns the login, logout, and profile endpoints.
type AuthHandlers struct {
	auth         AuthServiceInterface
	cookieDomain string
	logger       *slog.Logger
}

// NewAuthHandlers constructs AuthHandlers.
func NewAuthHandlers(opts AuthHandlersOptions) *AuthHandlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{
		auth:         opts.Auth,
		cookieDomain: opts.CookieDomain,
		logger:       logger,
	}
}

type loginInitRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInitResponse struct {
	SessionToken string `json:"session_token"`
}

// LoginInit handles POST /api/login/init: step 1 of the exchange. On success
// the backend has emailed a one-time code and the response carries the
// challenge token step 2 must echo back.
func (h *AuthHandlers) LoginInit(w http.ResponseWriter, r *http.Request) {
	var req loginInitRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.auth.BeginLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginInitResponse{SessionToken: token})
}

// LoginResend handles POST /api/login/resend: re-runs step 1 so the backend
// emails a fresh code. The returned challenge token supersedes the previous
// one.
func (h *AuthHandlers) LoginResend(w http.ResponseWriter, r *http.Request) {
	var req loginInitRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.auth.ResendCode(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginInitResponse{SessionToken: token})
}

type loginVerifyRequest struct {
	Email        string `json:"email"`
	OTP          string `json:"otp"`
	SessionToken string `json:"session_token"`
}

type loginVerifyResponse struct {
	Access string               `json:"access"`
	User   *domainauth.Identity `json:"user,omitempty"`
}

// LoginVerify handles POST /api/login/verify: step 2 of the exchange. On
// success the session is established and the token cookie is set; the SPA
// reads the cookie on later loads to rehydrate.
func (h *AuthHandlers) LoginVerify(w http.ResponseWriter, r *http.Request) {
	var req loginVerifyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sess, err := h.auth.VerifyLogin(r.Context(), service.VerifyInput{
		Email:          req.Email,
		OTP:            req.OTP,
		ChallengeToken: req.SessionToken,
	})
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	setTokenCookie(w, r, h.cookieDomain, sess.Token)
	WriteJSON(w, http.StatusOK, loginVerifyResponse{Access: sess.Token, User: sess.Identity})
}

// Logout handles POST /api/logout. It always ends in a logged-out state:
// the cookie is expired even when there was no server-side session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.logger.Warn("logout", slog.Any("error", err))
	}

	clearTokenCookie(w, r, h.cookieDomain)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/users/me: returns the confirmed identity for the
// session. The gate middleware has already resolved the session.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, identity)
}

// UpdateMe handles PATCH /api/users/me: a partial edit of the session's own
// profile. The body is forwarded field-for-field; the backend decides which
// fields an employee may change.
func (h *AuthHandlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if !DecodeJSON(w, r, &fields) {
		return
	}

	identity, err := h.auth.UpdateProfile(r.Context(), tokenFromRequest(r), fields)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, identity)
}

func (h *AuthHandlers) writeAuthError(w http.ResponseWriter, err error) {
	writeServiceError(w, h.logger, err)
}

// writeServiceError maps service and backend failures onto the wire taxonomy.
// Validation problems carry per-field messages; classified backend failures
// keep their human-readable message and collapse onto a small status set.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_error",
			"fields": verrs.Fields(),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNoPendingChallenge):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_pending_challenge",
			Err:     errors.New("no login in progress; start over"),
		})
		return
	case errors.Is(err, service.ErrStaleChallenge):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "stale_challenge",
			Err:     errors.New("a newer code was sent; use the code from the latest email"),
		})
		return
	case errors.Is(err, service.ErrSessionInvalid):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "session_invalid",
			Err:     errors.New("session is no longer valid"),
		})
		return
	}

	var be *timeapi.Error
	if errors.As(err, &be) {
		code := http.StatusBadGateway
		switch be.Kind {
		case timeapi.KindUnauthorized:
			code = http.StatusUnauthorized
		case timeapi.KindBadRequest:
			code = http.StatusBadRequest
		case timeapi.KindRateLimited:
			code = http.StatusTooManyRequests
		}
		WriteError(w, ErrorParams{
			Code:    code,
			ErrCode: string(be.Kind),
			Err:     errors.New(be.Message()),
		})
		return
	}

	logger.Error("request failed", slog.Any("error", err))
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("internal error"),
	})
}
