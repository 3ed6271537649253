package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/qbo"
)

func setFullEnv(t *testing.T) {
	t.Setenv("QB_CLIENT_ID", "id")
	t.Setenv("QB_CLIENT_SECRET", "secret")
	t.Setenv("QB_REFRESH_TOKEN", "refresh")
	t.Setenv("QB_ACCESS_TOKEN", "access")
	t.Setenv("QB_REALM_ID", "9130001")
	t.Setenv("QB_ENV", "production")
}

func TestFromEnv(t *testing.T) {
	setFullEnv(t)

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "refresh", cfg.RefreshToken)
	assert.Equal(t, "access", cfg.AccessToken)
	assert.Equal(t, "9130001", cfg.RealmID)
	assert.Equal(t, EnvProduction, cfg.Environment)
}

func TestFromEnvDefaultsToSandbox(t *testing.T) {
	setFullEnv(t)
	t.Setenv("QB_ENV", "")

	cfg := FromEnv()

	assert.Equal(t, EnvSandbox, cfg.Environment)
}

func TestValidateListsEveryMissingVariable(t *testing.T) {
	t.Setenv("QB_CLIENT_ID", "")
	t.Setenv("QB_CLIENT_SECRET", "")
	t.Setenv("QB_REFRESH_TOKEN", "refresh")
	t.Setenv("QB_ACCESS_TOKEN", "")
	t.Setenv("QB_REALM_ID", "")
	t.Setenv("QB_ENV", "")

	err := FromEnv().Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "QB_CLIENT_ID")
	assert.Contains(t, err.Error(), "QB_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "QB_REALM_ID")
	assert.NotContains(t, err.Error(), "QB_REFRESH_TOKEN", "set variables are not reported")
}

func TestValidateAccessTokenIsOptional(t *testing.T) {
	setFullEnv(t)
	t.Setenv("QB_ACCESS_TOKEN", "")

	assert.NoError(t, FromEnv().Validate())
}

func TestValidateRejectsUnknownEnvironment(t *testing.T) {
	setFullEnv(t)
	t.Setenv("QB_ENV", "staging")

	err := FromEnv().Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "QB_ENV")
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, qbo.SandboxBaseURL, Config{Environment: EnvSandbox}.BaseURL())
	assert.Equal(t, qbo.ProductionBaseURL, Config{Environment: EnvProduction}.BaseURL())
}

func TestBaseURLOverride(t *testing.T) {
	cfg := Config{Environment: EnvProduction, APIURL: "http://127.0.0.1:9999"}

	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL())
}
