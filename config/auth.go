package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication backend mode for the application.
type AuthMode string

const (
	// AuthModeBackend exchanges credentials against the REST identity backend.
	AuthModeBackend AuthMode = "backend"
	// AuthModeStub uses a local stub backend (for development only).
	AuthModeStub AuthMode = "stub"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "backend", "stub":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: backend, stub)", v)
	}
}

// StubAuthConfig controls the stub backend identity.
// Used when AUTH_MODE=stub for development and testing.
type StubAuthConfig struct {
	UserID    string `env:"USER_ID"    envDefault:"dev-user"`
	Email     string `env:"EMAIL"      envDefault:"dev@timemanager.local"`
	Password  string `env:"PASSWORD"   envDefault:"devpass"`
	FirstName string `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string `env:"LAST_NAME"  envDefault:"User"`
	Role      string `env:"ROLE"       envDefault:"company_admin"`
	OTP       string `env:"OTP"        envDefault:"123456"`
}

// AuthConfig groups authentication and session configuration.
type AuthConfig struct {
	// Mode determines which credential backend to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"backend"`

	// Stub configuration (used when Mode=stub).
	Stub StubAuthConfig `envPrefix:"STUB_AUTH_"`

	// SessionTTL bounds how long a bearer token is kept server-side. It
	// matches the durable cookie lifetime (7 days).
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// ChallengeTTL bounds a pending login challenge. The backend expires its
	// one-time codes after five minutes.
	ChallengeTTL time.Duration `env:"CHALLENGE_TTL" envDefault:"5m"`

	// PasswordMinLength is the login form's minimum password length. The
	// registration flow enforces its own stricter server-side policy.
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 168 * time.Hour
	}
	if a.ChallengeTTL <= 0 {
		a.ChallengeTTL = 5 * time.Minute
	}
	if a.PasswordMinLength < 1 {
		a.PasswordMinLength = 6
	}
}
