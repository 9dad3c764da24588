package stubbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timemanager/tm-ui-api/internal/adapters/timeapi"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	"github.com/timemanager/tm-ui-api/internal/ports"
)

func devConfig() Config {
	return Config{
		UserID:    "dev-user",
		Email:     "dev@timemanager.local",
		Password:  "devpass",
		FirstName: "Dev",
		LastName:  "User",
		Role:      domainauth.RoleCompanyAdmin,
	}
}

func TestNewBackendValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing user id", func(c *Config) { c.UserID = "" }},
		{"missing email", func(c *Config) { c.Email = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"invalid role", func(c *Config) { c.Role = "superuser" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := devConfig()
			tt.mutate(&cfg)
			_, err := NewBackend(cfg)
			assert.Error(t, err)
		})
	}
}

func TestFullExchange(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	challenge, err := backend.InitLogin(ctx, ports.InitLoginInput{
		Email:    "dev@timemanager.local",
		Password: "devpass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, challenge)

	result, err := backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "123456",
		ChallengeToken: challenge,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	require.NotNil(t, result.Identity)
	assert.Equal(t, domainauth.RoleCompanyAdmin, result.Identity.Role)
	assert.True(t, result.Identity.Active)

	identity, err := backend.FetchIdentity(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", identity.ID)
}

func TestInitLoginWrongCredentials(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)

	_, err = backend.InitLogin(context.Background(), ports.InitLoginInput{
		Email:    "dev@timemanager.local",
		Password: "wrongpass",
	})
	var be *timeapi.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, timeapi.KindUnauthorized, be.Kind)
}

func TestChallengeIsSingleUse(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	challenge, err := backend.InitLogin(ctx, ports.InitLoginInput{
		Email:    "dev@timemanager.local",
		Password: "devpass",
	})
	require.NoError(t, err)

	_, err = backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "123456",
		ChallengeToken: challenge,
	})
	require.NoError(t, err)

	// A second verification against the consumed challenge fails.
	_, err = backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "123456",
		ChallengeToken: challenge,
	})
	assert.Error(t, err)
}

func TestInitLoginReplacesChallenge(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	creds := ports.InitLoginInput{Email: "dev@timemanager.local", Password: "devpass"}
	first, err := backend.InitLogin(ctx, creds)
	require.NoError(t, err)
	second, err := backend.InitLogin(ctx, creds)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "123456",
		ChallengeToken: first,
	})
	assert.Error(t, err, "superseded challenge token must be rejected")
}

func TestWrongOTP(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	challenge, err := backend.InitLogin(ctx, ports.InitLoginInput{
		Email:    "dev@timemanager.local",
		Password: "devpass",
	})
	require.NoError(t, err)

	_, err = backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "000000",
		ChallengeToken: challenge,
	})
	var be *timeapi.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, timeapi.KindUnauthorized, be.Kind)
}

func TestUpdateProfileMergesNames(t *testing.T) {
	backend, token := loggedInBackend(t)
	ctx := context.Background()

	identity, err := backend.UpdateProfile(ctx, token, "dev-user", map[string]any{
		"firstname": "Ada",
		"lastname":  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", identity.FirstName)
	assert.Equal(t, "Lovelace", identity.LastName)

	_, err = backend.UpdateProfile(ctx, token, "someone-else", nil)
	var be *timeapi.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, timeapi.KindNotFound, be.Kind)
}

func TestClockToggleFlipsState(t *testing.T) {
	backend, token := loggedInBackend(t)
	ctx := context.Background()

	raw, err := backend.ClockState(ctx, token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clocked_in":false}`, string(raw))

	raw, err = backend.ToggleClock(ctx, token)
	require.NoError(t, err)
	var state struct {
		ClockedIn bool   `json:"clocked_in"`
		Since     string `json:"since"`
	}
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.True(t, state.ClockedIn)
	assert.NotEmpty(t, state.Since)

	raw, err = backend.ToggleClock(ctx, token)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.False(t, state.ClockedIn)
}

func TestDataEndpointsRequireIssuedToken(t *testing.T) {
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = backend.ToggleClock(ctx, "tok-forged")
	assert.Error(t, err)
	_, err = backend.UserStats(ctx, "tok-forged", "dev-user")
	assert.Error(t, err)
	_, err = backend.Forward(ctx, http.MethodGet, "/teams/", "tok-forged", nil)
	assert.Error(t, err)
	_, err = backend.FetchIdentity(ctx, "tok-forged")
	assert.Error(t, err)
}

func loggedInBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	backend, err := NewBackend(devConfig())
	require.NoError(t, err)
	ctx := context.Background()

	challenge, err := backend.InitLogin(ctx, ports.InitLoginInput{
		Email:    "dev@timemanager.local",
		Password: "devpass",
	})
	require.NoError(t, err)

	result, err := backend.VerifyLogin(ctx, ports.VerifyLoginInput{
		Email:          "dev@timemanager.local",
		OTP:            "123456",
		ChallengeToken: challenge,
	})
	require.NoError(t, err)
	return backend, result.AccessToken
}
