package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleEmployee     Role = "employee"
	RoleManager      Role = "manager"
	RoleCompanyAdmin Role = "company_admin"
)

// Valid reports whether r is one of the closed set of known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleCompanyAdmin:
		return true
	}
	return false
}

// Identity is the read-only projection of an authenticated principal as
// returned by the identity backend. It is never created locally; profile
// edits are merged optimistically and reconciled against the backend copy.
type Identity struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Active    bool   `json:"is_active"`
}

// Session pairs the bearer token with the identity it authenticates.
// A token-only session (Identity == nil) is valid and means the identity
// fetch has not confirmed yet.
type Session struct {
	Token     string    `json:"token"`
	Identity  *Identity `json:"identity,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether the session is fully established.
// Invariant: never true while Identity is nil.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Identity != nil
}

// PendingChallenge is an in-flight two-step login exchange. It exists only
// for the duration of one login attempt; a resend replaces ChallengeToken
// in place rather than creating a second challenge.
type PendingChallenge struct {
	Email          string    `json:"email"`
	ChallengeToken string    `json:"challenge_token"`
	ExpiresAt      time.Time `json:"expires_at"`
}
