package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/go-authgate/authcore/auth"
	"github.com/go-authgate/authcore/client"
	"github.com/go-authgate/authcore/config"
	"github.com/go-authgate/authcore/core"
	"github.com/go-authgate/authcore/metrics"
	"github.com/go-authgate/authcore/services"
	"github.com/go-authgate/authcore/store"
)

// OpenStore opens the user store configured in cfg and, when enabled, seeds
// the initial admin account. Only needed when the provider chain includes
// the local backend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if cfg.SeedAdmin {
		generated, err := st.SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword, cfg.Realm)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
		if generated != "" {
			// Surfaced once at startup; there is no other way to recover it.
			logger.Info("seeded admin user with generated password",
				zap.String("username", cfg.SeedAdminUsername),
				zap.String("password", generated))
		}
	}

	return st, nil
}

// BuildAuthService assembles the ordered provider chains from configuration
// and wires them into an orchestration service. st may be nil when no local
// provider is configured.
func BuildAuthService(
	cfg *config.Config,
	st *store.Store,
	logger *zap.Logger,
	recorder core.Recorder,
) (*services.AuthService, error) {
	if recorder == nil {
		recorder = metrics.Default()
	}

	var authProviders []core.AuthenticationProvider
	var masqProviders []core.MasqueradeProvider

	for _, name := range cfg.AuthProviders {
		switch name {
		case config.ProviderLocal:
			if st == nil {
				return nil, fmt.Errorf("local provider configured without a store")
			}
			authProviders = append(authProviders, auth.NewLocalProvider(st))
			masqProviders = append(masqProviders, auth.NewLocalMasqueradeProvider(st, cfg.Realm))

		case config.ProviderHTTPAPI:
			if cfg.HTTPAPIURL == "" {
				return nil, fmt.Errorf("http_api provider configured without HTTP_API_URL")
			}
			rc, err := client.NewRetryClient(
				cfg.HTTPAPIAuthMode,
				cfg.HTTPAPIAuthSecret,
				cfg.HTTPAPITimeout,
				cfg.HTTPAPIInsecureSkipVerify,
				cfg.HTTPAPIMaxRetries,
				cfg.HTTPAPIRetryDelay,
				cfg.HTTPAPIMaxRetryDelay,
				cfg.HTTPAPIAuthHeader,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create HTTP API client: %w", err)
			}
			authProviders = append(authProviders, auth.NewHTTPProvider(cfg.HTTPAPIURL, rc))
			if cfg.HTTPAPIMasqueradeURL != "" {
				masqProviders = append(masqProviders,
					auth.NewHTTPMasqueradeProvider(cfg.HTTPAPIMasqueradeURL, rc))
			}

		case config.ProviderToken:
			if cfg.TokenSecret == "" {
				return nil, fmt.Errorf("token provider configured without TOKEN_SECRET")
			}
			authProviders = append(authProviders,
				auth.NewTokenProvider(cfg.TokenSecret, cfg.TokenIssuer))

		default:
			return nil, fmt.Errorf("unknown auth provider: %s", name)
		}
	}

	return services.NewAuthService(
		cfg.Realm,
		authProviders,
		masqProviders,
		cfg.MasqueradePolicy(),
		cfg.MasqueradeRestrictedRoles,
		logger,
		recorder,
	), nil
}
