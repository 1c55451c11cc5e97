package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite://nba_betting.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, 30*time.Second, cfg.DashboardPollInterval)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.APIBaseURL)
	assert.True(t, cfg.SeedOnStartup)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9100")
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("API_CLIENT_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2*time.Second, cfg.APIClientTimeout)
}

// chdirTemp switches into a fresh temp dir for the test and restores the
// original working directory afterwards (equivalent to t.Chdir on Go 1.24+).
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
