package database

import (
	"os"
	"path/filepath"
	"testing"

	"carbonaware/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"db_host": "db.internal",
		"db_user": "carbon",
		"data_source": "watttime",
		"watttime_username": "alice",
		"allow_origins": ["https://example.com"],
		"retention_days": 7
	}`), 0o600))

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", config.DBHost)
	assert.Equal(t, "carbon", config.DBUser)
	assert.Equal(t, models.DataSourceWattTime, config.DataSource)
	assert.Equal(t, "alice", config.WattTimeUsername)
	assert.Equal(t, []string{"https://example.com"}, config.AllowOrigins)
	assert.Equal(t, 7, config.RetentionDays)
	// デフォルト値
	assert.Equal(t, ":8080", config.ServerAddress)
	assert.Equal(t, "disable", config.DBSSLMode)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

	require.NoError(t, err)
	assert.Equal(t, models.DataSourceDatabase, config.DataSource)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 30, config.RetentionDays)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"db_host": "db.internal"}`), 0o600))
	t.Setenv("CARBONAWARE_DB_HOST", "db.override")
	t.Setenv("CARBONAWARE_REDIS_DB", "3")

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "db.override", config.DBHost)
	assert.Equal(t, 3, config.RedisDB)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}
