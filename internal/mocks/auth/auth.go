// Package auth provides hand-written fakes for auth ports used in tests.
package auth

import (
	"context"
	"strings"
	"sync"

	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/ports"
)

// MemorySessionStore is an in-memory ports.SessionStore for tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

var _ ports.SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore constructs an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return domainauth.Session{}, ports.ErrNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports how many sessions are stored.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryChallengeStore is an in-memory ports.ChallengeStore for tests.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]domainauth.PendingChallenge
}

var _ ports.ChallengeStore = (*MemoryChallengeStore)(nil)

// NewMemoryChallengeStore constructs an empty in-memory challenge store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{challenges: make(map[string]domainauth.PendingChallenge)}
}

func (s *MemoryChallengeStore) Put(_ context.Context, ch domainauth.PendingChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[strings.ToLower(ch.Email)] = ch
	return nil
}

func (s *MemoryChallengeStore) Get(_ context.Context, email string) (domainauth.PendingChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[strings.ToLower(email)]
	if !ok {
		return domainauth.PendingChallenge{}, ports.ErrNotFound
	}
	return ch, nil
}

func (s *MemoryChallengeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, strings.ToLower(email))
	return nil
}

// FakeBackend is a scripted ports.CredentialBackend. Each func field defaults
// to a panic so tests fail loudly when an unexpected call happens; counters
// record how many calls were made.
type FakeBackend struct {
	InitLoginFunc     func(ctx context.Context, in ports.InitLoginInput) (string, error)
	VerifyLoginFunc   func(ctx context.Context, in ports.VerifyLoginInput) (ports.VerifyLoginResult, error)
	FetchIdentityFunc func(ctx context.Context, token string) (domainauth.Identity, error)
	UpdateProfileFunc func(ctx context.Context, token, userID string, fields map[string]any) (domainauth.Identity, error)

	mu             sync.Mutex
	InitLoginCalls int
	VerifyCalls    int
	FetchCalls     int
	UpdateCalls    int
}

var _ ports.CredentialBackend = (*FakeBackend)(nil)

func (f *FakeBackend) InitLogin(ctx context.Context, in ports.InitLoginInput) (string, error) {
	f.mu.Lock()
	f.InitLoginCalls++
	f.mu.Unlock()
	if f.InitLoginFunc == nil {
		panic("unexpected InitLogin call")
	}
	return f.InitLoginFunc(ctx, in)
}

func (f *FakeBackend) VerifyLogin(ctx context.Context, in ports.VerifyLoginInput) (ports.VerifyLoginResult, error) {
	f.mu.Lock()
	f.VerifyCalls++
	f.mu.Unlock()
	if f.VerifyLoginFunc == nil {
		panic("unexpected VerifyLogin call")
	}
	return f.VerifyLoginFunc(ctx, in)
}

func (f *FakeBackend) FetchIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	f.mu.Lock()
	f.FetchCalls++
	f.mu.Unlock()
	if f.FetchIdentityFunc == nil {
		panic("unexpected FetchIdentity call")
	}
	return f.FetchIdentityFunc(ctx, token)
}

func (f *FakeBackend) UpdateProfile(ctx context.Context, token, userID string, fields map[string]any) (domainauth.Identity, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.mu.Unlock()
	if f.UpdateProfileFunc == nil {
		panic("unexpected UpdateProfile call")
	}
	return f.UpdateProfileFunc(ctx, token, userID, fields)
}
