package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-authgate/authcore/core"
)

// Provider name constants
const (
	ProviderLocal   = "local"
	ProviderHTTPAPI = "http_api"
	ProviderToken   = "token"
)

type Config struct {
	// Realm is the default execution environment credentials are verified
	// against
	Realm string

	// AuthProviders is the ordered provider chain ("local", "http_api",
	// "token")
	AuthProviders []string

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// Admin seeding. When enabled and the realm has no users yet, an admin
	// account is created on startup; an empty password means "generate one".
	SeedAdmin         bool
	SeedAdminUsername string
	SeedAdminPassword string

	// HTTP API provider
	HTTPAPIURL                string
	HTTPAPIMasqueradeURL      string // empty disables the HTTP masquerade provider
	HTTPAPITimeout            time.Duration
	HTTPAPIInsecureSkipVerify bool
	HTTPAPIAuthMode           string // "none", "simple" or "hmac"
	HTTPAPIAuthSecret         string
	HTTPAPIAuthHeader         string
	HTTPAPIMaxRetries         int
	HTTPAPIRetryDelay         time.Duration
	HTTPAPIMaxRetryDelay      time.Duration

	// Token provider
	TokenSecret string
	TokenIssuer string

	// Masquerade settings. Enabled=false disables masquerade entirely;
	// enabled with an empty role list means any authenticated principal may
	// masquerade.
	MasqueradeEnabled         bool
	MasqueradeRoles           []string
	MasqueradeRestrictedRoles []string
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "authcore.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		Realm:         getEnv("REALM", "default"),
		AuthProviders: getEnvSlice("AUTH_PROVIDERS", []string{ProviderLocal}),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		// Admin seeding
		SeedAdmin:         getEnvBool("SEED_ADMIN", false),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),

		// HTTP API provider
		HTTPAPIURL:                getEnv("HTTP_API_URL", ""),
		HTTPAPIMasqueradeURL:      getEnv("HTTP_API_MASQUERADE_URL", ""),
		HTTPAPITimeout:            getEnvDuration("HTTP_API_TIMEOUT", 10*time.Second),
		HTTPAPIInsecureSkipVerify: getEnvBool("HTTP_API_INSECURE_SKIP_VERIFY", false),
		HTTPAPIAuthMode:           getEnv("HTTP_API_AUTH_MODE", "none"),
		HTTPAPIAuthSecret:         getEnv("HTTP_API_AUTH_SECRET", ""),
		HTTPAPIAuthHeader:         getEnv("HTTP_API_AUTH_HEADER", "X-API-Secret"),
		HTTPAPIMaxRetries:         getEnvInt("HTTP_API_MAX_RETRIES", 3),
		HTTPAPIRetryDelay:         getEnvDuration("HTTP_API_RETRY_DELAY", 1*time.Second),
		HTTPAPIMaxRetryDelay:      getEnvDuration("HTTP_API_MAX_RETRY_DELAY", 10*time.Second),

		// Token provider
		TokenSecret: getEnv("TOKEN_SECRET", ""),
		TokenIssuer: getEnv("TOKEN_ISSUER", ""),

		// Masquerade
		MasqueradeEnabled:         getEnvBool("MASQUERADE_ENABLED", false),
		MasqueradeRoles:           getEnvSlice("MASQUERADE_ROLES", nil),
		MasqueradeRestrictedRoles: getEnvSlice("MASQUERADE_RESTRICTED_ROLES", nil),
	}
}

// MasqueradePolicy maps the two env knobs onto the three policy states:
// disabled, unrestricted (enabled + empty role list), or restricted to the
// configured roles.
func (c *Config) MasqueradePolicy() core.MasqueradePolicy {
	if !c.MasqueradeEnabled {
		return core.MasqueradeDisabled()
	}
	if len(c.MasqueradeRoles) == 0 {
		return core.MasqueradeUnrestricted()
	}
	return core.MasqueradeRestrictedTo(c.MasqueradeRoles...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
