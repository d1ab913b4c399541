package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobtrail/jobtrail/config"
	"github.com/jobtrail/jobtrail/internal/adapters/devauth"
	"github.com/jobtrail/jobtrail/internal/adapters/oidc"
	redisadapter "github.com/jobtrail/jobtrail/internal/adapters/redis"
	"github.com/jobtrail/jobtrail/internal/ports"
	"github.com/jobtrail/jobtrail/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Cache       config.CacheConfig
	RedisClient redis.UniversalClient // optional
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var cache ports.PrincipalCache
	if cfg.RedisClient != nil {
		cache = redisadapter.NewPrincipalCache(cfg.RedisClient)
	} else if cfg.Logger != nil {
		cfg.Logger.Info("principal cache disabled: redis not configured")
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Verifier: verifier,
		Cache:    cache,
		CacheTTL: cfg.Cache.PrincipalTTL,
	}), nil
}

//nolint:ireturn // mode selection decides the concrete verifier at runtime.
func buildVerifier(ctx context.Context, cfg AuthConfig) (ports.TokenVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		verifier, err := devauth.NewVerifier(devauth.Config{
			Token:  cfg.Auth.DevAuth.Token,
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev verifier: %w", err)
		}
		if cfg.Logger != nil {
			cfg.Logger.Warn("mock auth enabled, do not use in production", "user_id", cfg.Auth.DevAuth.UserID)
		}
		return verifier, nil

	case config.AuthModeOIDC:
		verifier, err := oidc.NewVerifier(ctx, oidc.VerifierConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		return verifier, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Auth.Mode)
	}
}
