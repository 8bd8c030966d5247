package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-authgate/authcore/core"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "default", cfg.Realm)
	assert.Equal(t, []string{ProviderLocal}, cfg.AuthProviders)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "authcore.db", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.HTTPAPITimeout)
	assert.Equal(t, 3, cfg.HTTPAPIMaxRetries)
	assert.False(t, cfg.MasqueradeEnabled)
}

func TestLoad_ProviderChainOrderPreserved(t *testing.T) {
	t.Setenv("AUTH_PROVIDERS", "token, local ,http_api")

	cfg := Load()
	assert.Equal(t, []string{"token", "local", "http_api"}, cfg.AuthProviders)
}

func TestLoad_HTTPAPISettings(t *testing.T) {
	t.Setenv("HTTP_API_URL", "https://auth.internal/verify")
	t.Setenv("HTTP_API_TIMEOUT", "30s")
	t.Setenv("HTTP_API_MAX_RETRIES", "5")
	t.Setenv("HTTP_API_INSECURE_SKIP_VERIFY", "true")

	cfg := Load()
	assert.Equal(t, "https://auth.internal/verify", cfg.HTTPAPIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPAPITimeout)
	assert.Equal(t, 5, cfg.HTTPAPIMaxRetries)
	assert.True(t, cfg.HTTPAPIInsecureSkipVerify)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_API_TIMEOUT", "soon")
	t.Setenv("HTTP_API_MAX_RETRIES", "many")

	cfg := Load()
	assert.Equal(t, 10*time.Second, cfg.HTTPAPITimeout)
	assert.Equal(t, 3, cfg.HTTPAPIMaxRetries)
}

func TestLoad_SeedAdminSettings(t *testing.T) {
	cfg := Load()
	assert.False(t, cfg.SeedAdmin)
	assert.Equal(t, "admin", cfg.SeedAdminUsername)

	t.Setenv("SEED_ADMIN", "true")
	t.Setenv("SEED_ADMIN_USERNAME", "root")
	t.Setenv("SEED_ADMIN_PASSWORD", "changeme")

	cfg = Load()
	assert.True(t, cfg.SeedAdmin)
	assert.Equal(t, "root", cfg.SeedAdminUsername)
	assert.Equal(t, "changeme", cfg.SeedAdminPassword)
}

func TestMasqueradePolicy_Disabled(t *testing.T) {
	cfg := &Config{MasqueradeEnabled: false, MasqueradeRoles: []string{"admin"}}
	assert.False(t, cfg.MasqueradePolicy().Enabled())
}

func TestMasqueradePolicy_Unrestricted(t *testing.T) {
	cfg := &Config{MasqueradeEnabled: true}
	p := cfg.MasqueradePolicy()
	assert.True(t, p.Enabled())
	assert.True(t, p.Permits(core.NewIdentity("alice", "user")))
}

func TestMasqueradePolicy_Restricted(t *testing.T) {
	cfg := &Config{MasqueradeEnabled: true, MasqueradeRoles: []string{"admin"}}
	p := cfg.MasqueradePolicy()
	assert.True(t, p.Permits(core.NewIdentity("alice", "admin")))
	assert.False(t, p.Permits(core.NewIdentity("bob", "user")))
}

func TestMasqueradePolicy_FromEnv(t *testing.T) {
	t.Setenv("MASQUERADE_ENABLED", "true")
	t.Setenv("MASQUERADE_ROLES", "admin,Support")
	t.Setenv("MASQUERADE_RESTRICTED_ROLES", "superuser")

	cfg := Load()
	p := cfg.MasqueradePolicy()
	assert.True(t, p.Permits(core.NewIdentity("alice", "support")))
	assert.False(t, p.Permits(core.NewIdentity("bob", "user")))
	assert.Equal(t, []string{"superuser"}, cfg.MasqueradeRestrictedRoles)
}
