package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timemanager/tm-ui-api/config"
)

func baseConfig() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Auth.Mode = config.AuthModeBackend
	cfg.Auth.Stub = config.StubAuthConfig{
		UserID:    "dev-user",
		Email:     "dev@timemanager.local",
		Password:  "devpass",
		FirstName: "Dev",
		LastName:  "User",
		Role:      "company_admin",
	}
	cfg.Backend.BaseURL = "http://localhost:8000/api"
	cfg.Sanitize()
	return cfg
}

func TestBuildCredentialBackendRESTMode(t *testing.T) {
	cfg := baseConfig()

	backend, proxy, err := buildCredentialBackend(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.NotNil(t, proxy)
}

func TestBuildCredentialBackendStubRequiresDev(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.Mode = config.AuthModeStub

	_, _, err := buildCredentialBackend(cfg, nil)
	assert.Error(t, err, "stub auth must be refused outside dev mode")

	cfg.IsDev = true
	backend, proxy, err := buildCredentialBackend(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.NotNil(t, proxy)
}

func TestBuildCredentialBackendStubBadRole(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.Mode = config.AuthModeStub
	cfg.IsDev = true
	cfg.Auth.Stub.Role = "superuser"

	_, _, err := buildCredentialBackend(cfg, nil)
	assert.Error(t, err)
}

func TestBuildCredentialBackendUnknownMode(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.Mode = config.AuthMode("ldap")

	_, _, err := buildCredentialBackend(cfg, nil)
	assert.Error(t, err)
}

func TestBuildCredentialBackendMissingBaseURL(t *testing.T) {
	cfg := baseConfig()
	cfg.Backend.BaseURL = ""

	_, _, err := buildCredentialBackend(cfg, nil)
	assert.Error(t, err)
}
