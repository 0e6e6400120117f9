package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://maps.googleapis.com/maps/api", cfg.Google.BaseURL)
	assert.Equal(t, 10, cfg.Google.TimeoutSecs)
	assert.InDelta(t, 10.0, cfg.Google.RatePerSecond, 0.001)
	assert.Equal(t, 60, cfg.Cache.LeadsTTLMinutes)
	assert.Equal(t, 1440, cfg.Cache.GeocodeTTLMinutes)
	assert.Equal(t, 2, cfg.Search.PageDelaySecs)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadscout.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.RatePerMinute)
	assert.True(t, cfg.Auth.DevMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/leads
log:
  level: debug
  format: console
server:
  port: 9090
cache:
  leads_ttl_minutes: 30
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/leads", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Cache.LeadsTTLMinutes)
	// Defaults still apply for unset values
	assert.Equal(t, 2, cfg.Search.PageDelaySecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: postgres
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADSCOUT_STORE_DRIVER", "sqlite")
	t.Setenv("LEADSCOUT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("LEADSCOUT_SERVER_PORT", "3000")
	t.Setenv("LEADSCOUT_GOOGLE_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Google.Key)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Google.Key = "test-key"
	cfg.Google.RatePerSecond = 10
	cfg.Cache.LeadsTTLMinutes = 60
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "leadscout.db"
	cfg.Server.Port = 8080
	cfg.Auth.DevMode = true
	return cfg
}

func TestValidateServe_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_MissingFields(t *testing.T) {
	cfg := validDefaults()
	cfg.Google.Key = ""
	cfg.Store.DatabaseURL = ""

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google.key is required")
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_AuthProviderRequired(t *testing.T) {
	cfg := validDefaults()
	cfg.Auth.DevMode = false

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.provider_url is required")

	cfg.Auth.ProviderURL = "https://auth.example.com"
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateSearch_NoStoreNeeded(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = ""
	cfg.Store.DatabaseURL = ""

	assert.NoError(t, cfg.Validate("search"))
}

func TestValidateStore_BadDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
