package timeapi

// Package timeapi is the REST client for the Time Manager identity backend.
// It owns the wire shapes and the error classification; callers see domain
// types and classified errors only.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/ports"
)

const maxErrorBody = 64 << 10

// Config holds configuration for the backend client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional, defaults to a client with Timeout
}

// Client talks to the REST identity backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time conformance to the credential backend port.
var _ ports.CredentialBackend = (*Client)(nil)

// NewClient creates a backend client from Config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type initLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type initLoginResponse struct {
	SessionToken string `json:"session_token"`
}

// InitLogin submits credentials and returns the backend's challenge token.
func (c *Client) InitLogin(ctx context.Context, in ports.InitLoginInput) (string, error) {
	var resp initLoginResponse
	err := c.postJSON(ctx, "/login/init/", initLoginRequest{
		Email:    in.Email,
		Password: in.Password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.SessionToken == "" {
		return "", &Error{Kind: KindServer, Detail: "backend returned no session token"}
	}
	return resp.SessionToken, nil
}

type verifyLoginRequest struct {
	Email        string `json:"email"`
	OTP          string `json:"otp"`
	SessionToken string `json:"session_token"`
}

type verifyLoginResponse struct {
	Access  string               `json:"access"`
	Refresh string               `json:"refresh"`
	User    *domainauth.Identity `json:"user"`
}

// VerifyLogin completes the exchange and returns the bearer token, plus the
// identity projection when the backend includes one.
func (c *Client) VerifyLogin(ctx context.Context, in ports.VerifyLoginInput) (ports.VerifyLoginResult, error) {
	var resp verifyLoginResponse
	err := c.postJSON(ctx, "/login/verify/", verifyLoginRequest{
		Email:        in.Email,
		OTP:          in.OTP,
		SessionToken: in.ChallengeToken,
	}, &resp)
	if err != nil {
		return ports.VerifyLoginResult{}, err
	}
	if resp.Access == "" {
		return ports.VerifyLoginResult{}, &Error{Kind: KindServer, Detail: "backend returned no access token"}
	}
	return ports.VerifyLoginResult{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		Identity:     resp.User,
	}, nil
}

// FetchIdentity resolves the identity behind a bearer token.
func (c *Client) FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	var identity domainauth.Identity
	if err := c.getJSON(ctx, "/users/me/", token, &identity); err != nil {
		return domainauth.Identity{}, err
	}
	return identity, nil
}

// UpdateProfile sends a partial profile update for the current user and
// returns the backend's authoritative copy.
func (c *Client) UpdateProfile(ctx context.Context, token, userID string, fields map[string]any) (domainauth.Identity, error) {
	var identity domainauth.Identity
	path := "/users/" + userID + "/"
	if err := c.doJSON(ctx, http.MethodPatch, path, token, fields, &identity); err != nil {
		return domainauth.Identity{}, err
	}
	return identity, nil
}

// ToggleClock flips the current user's clock state.
func (c *Client) ToggleClock(ctx context.Context, token string) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodPost, "/clocks/toggle/", token, nil)
}

// UserStats returns the dashboard statistics for a user.
func (c *Client) UserStats(ctx context.Context, token, userID string) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodGet, "/users/"+userID+"/stats/", token, nil)
}

// ClockState returns the current user's clock status.
func (c *Client) ClockState(ctx context.Context, token string) (json.RawMessage, error) {
	return c.forward(ctx, http.MethodGet, "/clocks/me/", token, nil)
}

// Forward relays a request body to the backend verbatim and returns the raw
// response payload. Used by the passthrough handlers for teams and users,
// which bind UI forms to backend endpoints without interpreting them.
func (c *Client) Forward(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error) {
	return c.forward(ctx, method, path, token, body)
}

func (c *Client) forward(ctx context.Context, method, path, token string, body json.RawMessage) (json.RawMessage, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp.StatusCode, payload)
	}
	return payload, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, dst any) error {
	return c.doJSON(ctx, http.MethodPost, path, "", body, dst)
}

func (c *Client) getJSON(ctx context.Context, path, token string, dst any) error {
	return c.doJSON(ctx, http.MethodGet, path, token, nil, dst)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, dst any) error {
	var payload json.RawMessage
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
	}

	raw, err := c.forward(ctx, method, path, token, payload)
	if err != nil {
		return err
	}
	if dst == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
