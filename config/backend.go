package config

import "time"

// BackendConfig contains configuration for the REST identity backend that
// owns users, teams, and clock records.
type BackendConfig struct {
	// BaseURL is the backend API root, e.g. "http://localhost:8000/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout bounds every round-trip to the backend.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
