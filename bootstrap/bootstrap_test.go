package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-authgate/authcore/config"
	"github.com/go-authgate/authcore/core"
)

func testConfig() *config.Config {
	return &config.Config{
		Realm:          "default",
		AuthProviders:  []string{config.ProviderLocal},
		DatabaseDriver: "sqlite",
		DatabaseDSN:    ":memory:",
	}
}

func TestOpenStore_SeedsAdmin(t *testing.T) {
	cfg := testConfig()
	cfg.SeedAdmin = true
	cfg.SeedAdminPassword = "bootstrap-pw"

	st, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)

	svc, err := BuildAuthService(cfg, st, nil, nil)
	require.NoError(t, err)

	res, err := svc.Authenticate(context.Background(), "admin", "bootstrap-pw")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.Identity.HasRole("admin"))
}

func TestBuildAuthService_LocalChain(t *testing.T) {
	cfg := testConfig()
	st, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)

	svc, err := BuildAuthService(cfg, st, nil, nil)
	require.NoError(t, err)

	// No users seeded: the local provider answers with a failure, which the
	// aggregation hands back as-is.
	res, err := svc.Authenticate(context.Background(), "ghost", "pw")
	require.NoError(t, err)
	assert.True(t, res.Failed())
}

func TestBuildAuthService_LocalWithoutStore(t *testing.T) {
	_, err := BuildAuthService(testConfig(), nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a store")
}

func TestBuildAuthService_UnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.AuthProviders = []string{"ldap"}

	_, err := BuildAuthService(cfg, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth provider")
}

func TestBuildAuthService_TokenRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.AuthProviders = []string{config.ProviderToken}

	_, err := BuildAuthService(cfg, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
}

func TestBuildAuthService_HTTPAPIRequiresURL(t *testing.T) {
	cfg := testConfig()
	cfg.AuthProviders = []string{config.ProviderHTTPAPI}

	_, err := BuildAuthService(cfg, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_API_URL")
}

func TestBuildAuthService_MasqueradeDisabledByDefault(t *testing.T) {
	cfg := testConfig()
	st, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)

	svc, err := BuildAuthService(cfg, st, nil, nil)
	require.NoError(t, err)

	// The local chain wires a masquerade provider, but the default policy
	// denies every principal.
	res, err := svc.Masquerade(context.Background(), core.NewIdentity("alice", "admin"), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{core.MsgAccessDenied}, res.Errors)
}
