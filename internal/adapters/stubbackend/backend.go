package stubbackend

// Package stubbackend provides a config-driven CredentialBackend for local
// development. It accepts one fixed identity and a fixed one-time code, so
// the full two-step flow can be exercised without a running backend.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timemanager/tm-ui-api/internal/adapters/timeapi"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/ports"
)

// Config controls the stub backend's single account.
type Config struct {
	UserID    string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domainauth.Role
	OTP       string // default "123456" when empty
}

// Backend implements ports.CredentialBackend against an in-memory account.
// Tokens are uuids; a new challenge token is issued on every InitLogin, so
// resend-supersedes behavior is observable in development too.
type Backend struct {
	cfg Config

	mu        sync.Mutex
	challenge string
	issued    map[string]bool // access tokens handed out
	clockedIn bool
	clockedAt time.Time
}

var _ ports.CredentialBackend = (*Backend)(nil)

// NewBackend constructs a stub backend from Config.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.UserID == "" {
		return nil, errors.New("stub backend: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("stub backend: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("stub backend: Password is required")
	}
	if !cfg.Role.Valid() {
		return nil, errors.New("stub backend: Role is not a known role")
	}
	if cfg.OTP == "" {
		cfg.OTP = "123456"
	}
	return &Backend{
		cfg:    cfg,
		issued: map[string]bool{},
	}, nil
}

func (b *Backend) InitLogin(_ context.Context, in ports.InitLoginInput) (string, error) {
	if !strings.EqualFold(in.Email, b.cfg.Email) || in.Password != b.cfg.Password {
		return "", unauthorized("Invalid credentials.")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.challenge = uuid.New().String()
	return b.challenge, nil
}

func (b *Backend) VerifyLogin(_ context.Context, in ports.VerifyLoginInput) (ports.VerifyLoginResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.challenge == "" || in.ChallengeToken != b.challenge {
		return ports.VerifyLoginResult{}, unauthorized("Invalid session.")
	}
	if in.OTP != b.cfg.OTP {
		return ports.VerifyLoginResult{}, unauthorized("Incorrect OTP.")
	}

	// Challenge is single-use
	b.challenge = ""

	access := uuid.New().String()
	b.issued[access] = true

	identity := b.identity()
	return ports.VerifyLoginResult{
		AccessToken:  access,
		RefreshToken: uuid.New().String(),
		Identity:     &identity,
	}, nil
}

func (b *Backend) FetchIdentity(_ context.Context, token string) (domainauth.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.issued[token] {
		return domainauth.Identity{}, unauthorized("Invalid token.")
	}
	return b.identity(), nil
}

func (b *Backend) UpdateProfile(_ context.Context, token, userID string, fields map[string]any) (domainauth.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.issued[token] {
		return domainauth.Identity{}, unauthorized("Invalid token.")
	}
	if userID != b.cfg.UserID {
		return domainauth.Identity{}, &timeapi.Error{Kind: timeapi.KindNotFound, Status: 404, Detail: "User not found."}
	}
	if v, ok := fields["firstname"].(string); ok {
		b.cfg.FirstName = v
	}
	if v, ok := fields["lastname"].(string); ok {
		b.cfg.LastName = v
	}
	return b.identity(), nil
}

func unauthorized(detail string) *timeapi.Error {
	return &timeapi.Error{Kind: timeapi.KindUnauthorized, Status: 401, Detail: detail}
}

func (b *Backend) identity() domainauth.Identity {
	return domainauth.Identity{
		ID:        b.cfg.UserID,
		FirstName: b.cfg.FirstName,
		LastName:  b.cfg.LastName,
		Email:     b.cfg.Email,
		Role:      b.cfg.Role,
		Active:    true,
	}
}
