package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  postgres:
    host: localhost
    database: ratings
    user: rater
  redis:
    host: localhost
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 0.4, cfg.Rating.Weights.Environmental, 1e-9)
	assert.InDelta(t, 0.35, cfg.Rating.Weights.Social, 1e-9)
	assert.InDelta(t, 0.25, cfg.Rating.Weights.Economic, 1e-9)
	assert.Equal(t, 30, cfg.Rating.ExpiryDays)
	assert.Equal(t, "ratings.calculated", cfg.Events.CalculatedChannel)
	assert.Equal(t, "brands.updated", cfg.Events.BrandUpdatedChannel)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
server:
  port: 9090
rating:
  expiry_days: 7
  weights:
    environmental: 0.5
    social: 0.3
    economic: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Rating.ExpiryDays)
	assert.InDelta(t, 0.5, cfg.Rating.Weights.Environmental, 1e-9)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{
				Postgres: PostgresConfig{Host: "localhost", Database: "ratings", User: "rater"},
				Redis:    RedisConfig{Host: "localhost"},
			},
			Rating: RatingConfig{ExpiryDays: 30},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing postgres host", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Postgres.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing redis host", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Redis.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive expiry", func(t *testing.T) {
		cfg := valid()
		cfg.Rating.ExpiryDays = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("scheduler enabled without cron", func(t *testing.T) {
		cfg := valid()
		cfg.Scheduler.Enabled = true
		assert.Error(t, cfg.Validate())
	})
}
