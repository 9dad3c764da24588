package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/ports"
	"golang.org/x/sync/singleflight"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend    ports.CredentialBackend
	Sessions   ports.SessionStore
	Challenges ports.ChallengeStore

	SessionTTL        time.Duration // default 7 days
	ChallengeTTL      time.Duration // default 5 minutes
	PasswordMinLength int           // default 6
}

// AuthService orchestrates the two-step credential exchange and owns the
// session lifecycle. It is the single write path for session state.
type AuthService struct {
	backend    ports.CredentialBackend
	sessions   ports.SessionStore
	challenges ports.ChallengeStore

	sessionTTL   time.Duration
	challengeTTL time.Duration
	minPassword  int

	// Collapses concurrent identity fetches for the same token into one
	// backend call.
	fetchGroup singleflight.Group
}

var (
	// ErrSessionInvalid means the bearer token is no longer good; the caller
	// must treat the client as logged out.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrNoPendingChallenge means step 2 was attempted without a live
	// challenge from step 1.
	ErrNoPendingChallenge = errors.New("no pending login challenge")

	// ErrStaleChallenge means the submitted challenge token was superseded
	// by a resend.
	ErrStaleChallenge = errors.New("challenge token superseded")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	challengeTTL := opts.ChallengeTTL
	if challengeTTL <= 0 {
		challengeTTL = 5 * time.Minute
	}
	minPassword := opts.PasswordMinLength
	if minPassword < 1 {
		minPassword = 6
	}
	return &AuthService{
		backend:      opts.Backend,
		sessions:     opts.Sessions,
		challenges:   opts.Challenges,
		sessionTTL:   sessionTTL,
		challengeTTL: challengeTTL,
		minPassword:  minPassword,
	}
}

// BeginLogin runs step 1 of the exchange: validates credentials locally,
// submits them to the backend, and records the issued challenge token as the
// single authoritative pending challenge for the email. Calling it again for
// the same email (resend) replaces the prior challenge.
func (s *AuthService) BeginLogin(ctx context.Context, email, password string) (string, error) {
	if errs := validateCredentials(email, password, s.minPassword); len(errs) > 0 {
		return "", errs
	}

	token, err := s.backend.InitLogin(ctx, ports.InitLoginInput{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("init login: %w", err)
	}

	ch := domainauth.PendingChallenge{
		Email:          email,
		ChallengeToken: token,
		ExpiresAt:      time.Now().Add(s.challengeTTL),
	}
	if putErr := s.challenges.Put(ctx, ch); putErr != nil {
		return "", fmt.Errorf("record pending challenge: %w", putErr)
	}

	return token, nil
}

// ResendCode re-runs step 1 with the same credentials. The new challenge
// token supersedes the old one; verification against the old token fails
// with ErrStaleChallenge from then on.
func (s *AuthService) ResendCode(ctx context.Context, email, password string) (string, error) {
	return s.BeginLogin(ctx, email, password)
}

// VerifyInput groups parameters for step 2 of the exchange.
type VerifyInput struct {
	Email          string
	OTP            string
	ChallengeToken string
}

// VerifyLogin runs step 2: validates the code locally, checks the challenge
// token is the most recent one for the email, completes the exchange, and
// persists the authenticated session. The pending challenge is discarded on
// success.
func (s *AuthService) VerifyLogin(ctx context.Context, in VerifyInput) (domainauth.Session, error) {
	if errs := validateOTP(in.OTP); len(errs) > 0 {
		return domainauth.Session{}, errs
	}

	ch, err := s.challenges.Get(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domainauth.Session{}, ErrNoPendingChallenge
		}
		return domainauth.Session{}, fmt.Errorf("load pending challenge: %w", err)
	}
	if in.ChallengeToken == "" || in.ChallengeToken != ch.ChallengeToken {
		return domainauth.Session{}, ErrStaleChallenge
	}

	result, err := s.backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          in.Email,
		OTP:            in.OTP,
		ChallengeToken: in.ChallengeToken,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("verify login: %w", err)
	}

	identity := result.Identity
	if identity == nil {
		fetched, fetchErr := s.backend.FetchIdentity(ctx, result.AccessToken)
		if fetchErr != nil {
			return domainauth.Session{}, fmt.Errorf("fetch identity: %w", fetchErr)
		}
		identity = &fetched
	}

	sess := domainauth.Session{
		Token:     result.AccessToken,
		Identity:  identity,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	// The exchange is complete; the challenge must not survive it. Failure
	// here is not fatal: the store's TTL bounds the leftover.
	_ = s.challenges.Delete(ctx, in.Email)

	return sess, nil
}

// GetSession resolves the session behind a bearer token. A token without a
// confirmed identity triggers the identity fetch; if the backend rejects the
// token the session is cleared and ErrSessionInvalid is returned.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	sess, err := s.sessions.Get(ctx, token)
	if err == nil && sess.Authenticated() {
		if !sess.Identity.Active {
			// Inactive identities must not retain a session.
			_ = s.sessions.Delete(ctx, token)
			return nil, ErrSessionInvalid
		}
		return &sess, nil
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Token present but identity unconfirmed: fetch it, once per token even
	// under concurrent navigations.
	confirmed, err, _ := s.fetchGroup.Do(token, func() (any, error) {
		return s.confirmIdentity(ctx, token)
	})
	if err != nil {
		return nil, err
	}

	result := confirmed.(domainauth.Session)
	return &result, nil
}

// confirmIdentity fetches the identity behind the token and persists the
// fully established session. A rejected token clears any partial session.
func (s *AuthService) confirmIdentity(ctx context.Context, token string) (domainauth.Session, error) {
	identity, err := s.backend.FetchIdentity(ctx, token)
	if err != nil {
		_ = s.sessions.Delete(ctx, token)
		return domainauth.Session{}, ErrSessionInvalid
	}
	if !identity.Active {
		_ = s.sessions.Delete(ctx, token)
		return domainauth.Session{}, ErrSessionInvalid
	}

	sess := domainauth.Session{
		Token:     token,
		Identity:  &identity,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}
	return sess, nil
}

// Logout removes the session behind the token. Missing sessions are not an
// error; logout must always end in a logged-out state.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial profile edit for the session's identity,
// then reconciles the stored session with the backend's authoritative copy.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, fields map[string]any) (domainauth.Identity, error) {
	sess, err := s.GetSession(ctx, token)
	if err != nil {
		return domainauth.Identity{}, err
	}

	identity, err := s.backend.UpdateProfile(ctx, token, sess.Identity.ID, fields)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("update profile: %w", err)
	}

	sess.Identity = &identity
	if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
		return domainauth.Identity{}, fmt.Errorf("save session: %w", saveErr)
	}
	return identity, nil
}
