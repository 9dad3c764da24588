package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
)

// ErrNotFound is returned by stores when no record exists for the key.
var ErrNotFound = errors.New("not found")

// InitLoginInput carries the credentials for step 1 of the login exchange.
type InitLoginInput struct {
	Email    string
	Password string
}

// VerifyLoginInput groups parameters for step 2, the one-time-code exchange.
type VerifyLoginInput struct {
	Email          string
	OTP            string
	ChallengeToken string
}

// VerifyLoginResult is the backend's answer to a successful verification.
// Identity may be nil when the backend omits the user projection; callers
// fetch it separately with the access token.
type VerifyLoginResult struct {
	AccessToken  string
	RefreshToken string
	Identity     *domainauth.Identity
}

// CredentialBackend performs the two-step credential exchange and identity
// fetch against the REST identity backend.
type CredentialBackend interface {
	// InitLogin submits credentials and returns the opaque challenge token
	// the backend issued for the one-time-code step.
	InitLogin(ctx context.Context, in InitLoginInput) (challengeToken string, err error)

	// VerifyLogin completes the exchange, converting the challenge token and
	// code into a bearer token and (optionally) an identity projection.
	VerifyLogin(ctx context.Context, in VerifyLoginInput) (VerifyLoginResult, error)

	// FetchIdentity resolves the identity behind a bearer token. Any failure
	// means the token is no longer good and the session must be discarded.
	FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error)

	// UpdateProfile applies a partial profile edit for the given user and
	// returns the backend's authoritative copy of the identity.
	UpdateProfile(ctx context.Context, token, userID string, fields map[string]any) (domainauth.Identity, error)
}

// SessionStore persists and retrieves sessions keyed by bearer token.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, token string) (domainauth.Session, error)
	Delete(ctx context.Context, token string) error
}

// ChallengeStore tracks the single authoritative pending challenge per login
// email. Put replaces any prior challenge for the same email, which is how
// resend supersedes a stale token.
type ChallengeStore interface {
	Put(ctx context.Context, ch domainauth.PendingChallenge) error
	Get(ctx context.Context, email string) (domainauth.PendingChallenge, error)
	Delete(ctx context.Context, email string) error
}
