// Package config loads ledger API credentials from the environment and
// the cash-flow classification rules from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/qbo"
)

// Environment names accepted in QB_ENV.
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Config holds the ledger API credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string // optional seed; refreshed when absent or stale
	RealmID      string
	Environment  string
	APIURL       string // optional override of the environment's API host
}

// FromEnv reads the QB_* variables. QB_ACCESS_TOKEN and QB_API_URL are
// optional and QB_ENV defaults to sandbox; the rest is checked by
// Validate.
func FromEnv() Config {
	cfg := Config{
		ClientID:     os.Getenv("QB_CLIENT_ID"),
		ClientSecret: os.Getenv("QB_CLIENT_SECRET"),
		RefreshToken: os.Getenv("QB_REFRESH_TOKEN"),
		AccessToken:  os.Getenv("QB_ACCESS_TOKEN"),
		RealmID:      os.Getenv("QB_REALM_ID"),
		Environment:  os.Getenv("QB_ENV"),
		APIURL:       os.Getenv("QB_API_URL"),
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvSandbox
	}
	return cfg
}

// Validate names every missing required variable in one error so a bare
// environment is fixed in one pass.
func (c Config) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "QB_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "QB_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "QB_REFRESH_TOKEN")
	}
	if c.RealmID == "" {
		missing = append(missing, "QB_REALM_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	if c.Environment != EnvSandbox && c.Environment != EnvProduction {
		return fmt.Errorf("QB_ENV must be %s or %s, got %q", EnvSandbox, EnvProduction, c.Environment)
	}
	return nil
}

// BaseURL maps the environment to the ledger API host. QB_API_URL
// overrides the mapping when set.
func (c Config) BaseURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	if c.Environment == EnvProduction {
		return qbo.ProductionBaseURL
	}
	return qbo.SandboxBaseURL
}
