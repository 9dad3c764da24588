package timeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Kind classifies a backend failure the way the UI reports it. Every
// non-2xx response and every transport failure maps to exactly one Kind.
type Kind string

const (
	// KindUnauthorized covers 401s: invalid credentials, invalid or expired
	// one-time codes, and rejected bearer tokens.
	KindUnauthorized Kind = "unauthorized"
	// KindBadRequest covers 400s: malformed requests the backend refused.
	KindBadRequest Kind = "bad_request"
	// KindRateLimited covers 429s. The client never retries on its own.
	KindRateLimited Kind = "rate_limited"
	// KindNotFound covers 404s from backend endpoints, treated as a
	// configuration problem rather than a user error.
	KindNotFound Kind = "not_found"
	// KindServer covers 5xx responses.
	KindServer Kind = "server"
	// KindTransport covers failures where no response was received.
	KindTransport Kind = "transport"
)

// Error is a classified backend failure. Detail carries the backend's own
// message when one could be extracted from the response body.
type Error struct {
	Kind   Kind
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s (%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("backend %s", e.Kind)
}

// Message returns the human-readable text shown to the user for this failure.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUnauthorized:
		if e.Detail != "" {
			return e.Detail
		}
		return "Invalid credentials."
	case KindRateLimited:
		return "Too many attempts. Please wait a moment before trying again."
	case KindNotFound:
		return "The service is misconfigured. Please contact your administrator."
	case KindServer:
		return "Something went wrong on our side. Please try again later."
	case KindTransport:
		return "Could not reach the server. Check your connection and try again."
	default:
		if e.Detail != "" {
			return e.Detail
		}
		return "The request could not be processed."
	}
}

// KindOf returns the Kind of a classified error, or KindTransport when the
// error did not come from an HTTP response at all.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindTransport
}

// classifyResponse converts a non-2xx response into an *Error.
func classifyResponse(status int, body []byte) *Error {
	e := &Error{Status: status, Detail: extractDetail(body)}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindBadRequest
	}
	return e
}

// transportError wraps a round-trip failure where no response arrived.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Detail: err.Error()}
}

// detailExpr matches the places the backend puts its message: a top-level
// "detail" value, a "message", or DRF-style non-field errors. "detail" may
// be a string or a one-element list depending on the endpoint.
const detailExpr = "detail || message || non_field_errors"

// extractDetail pulls a human-readable message out of a backend error body.
// The backend's error shapes vary by endpoint, so this searches rather than
// unmarshalling into a fixed struct. Returns "" when nothing usable exists.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	result, err := jmespath.Search(detailExpr, payload)
	if err != nil {
		return ""
	}
	switch v := result.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
