package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/timemanager/tm-ui-api/config"
	redisadapter "github.com/timemanager/tm-ui-api/internal/adapters/redis"
	"github.com/timemanager/tm-ui-api/internal/adapters/stubbackend"
	"github.com/timemanager/tm-ui-api/internal/adapters/timeapi"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
	httpx "github.com/timemanager/tm-ui-api/internal/http"
	"github.com/timemanager/tm-ui-api/internal/ports"
	"github.com/timemanager/tm-ui-api/internal/service"
)

// AuthDeps groups dependencies for BuildAuthService.
type AuthDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// AuthComponents holds the assembled auth service and the backend client it
// talks to. Proxy is the same backend seen through the data-relay interface
// used by the passthrough handlers.
type AuthComponents struct {
	Auth    *service.AuthService
	Backend ports.CredentialBackend
	Proxy   httpx.BackendProxy
}

// BuildAuthService assembles the credential backend, stores, and auth
// service from configuration.
func BuildAuthService(deps AuthDeps) (AuthComponents, error) {
	cfg := deps.Config

	backend, proxy, err := buildCredentialBackend(cfg, deps.Logger)
	if err != nil {
		return AuthComponents{}, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:           backend,
		Sessions:          redisadapter.NewSessionStore(deps.RedisClient),
		Challenges:        redisadapter.NewChallengeStore(deps.RedisClient),
		SessionTTL:        cfg.Auth.SessionTTL,
		ChallengeTTL:      cfg.Auth.ChallengeTTL,
		PasswordMinLength: cfg.Auth.PasswordMinLength,
	})

	return AuthComponents{Auth: auth, Backend: backend, Proxy: proxy}, nil
}

//nolint:ireturn // the backend is selected at runtime from configuration.
func buildCredentialBackend(cfg *config.AppConfig, logger *slog.Logger) (ports.CredentialBackend, httpx.BackendProxy, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeStub:
		if !cfg.IsDev {
			return nil, nil, fmt.Errorf("auth mode %q is only allowed in dev mode", cfg.Auth.Mode)
		}
		if logger != nil {
			logger.Warn("using stub credential backend", "email", cfg.Auth.Stub.Email)
		}
		stub, err := stubbackend.NewBackend(stubbackend.Config{
			UserID:    cfg.Auth.Stub.UserID,
			Email:     cfg.Auth.Stub.Email,
			Password:  cfg.Auth.Stub.Password,
			FirstName: cfg.Auth.Stub.FirstName,
			LastName:  cfg.Auth.Stub.LastName,
			Role:      domainauth.Role(cfg.Auth.Stub.Role),
			OTP:       cfg.Auth.Stub.OTP,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build stub backend: %w", err)
		}
		return stub, stub, nil

	case config.AuthModeBackend:
		client, err := timeapi.NewClient(timeapi.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build backend client: %w", err)
		}
		return client, client, nil

	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
