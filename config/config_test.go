package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Web.Port)
	assert.Equal(t, "0.0.0.0:3001", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "https://sudhakar6233.github.io"}, cfg.Web.AllowOrigins)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, "Your Company", cfg.Mail.Signature)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "foodhub.yml")
	data := []byte(`
web:
  port: 8080
database:
  type: sqlite
  url: /tmp/foodhub.db
mail:
  username: file@example.com
`)
	require.NoError(t, os.WriteFile(cfile, data, 0o600))

	t.Setenv("FOODHUB_WEB_PORT", "9090")
	t.Setenv("FOODHUB_WEB_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("GMAIL_USER", "env@example.com")
	t.Setenv("GMAIL_PASS", "secret")
	t.Setenv("FOODHUB_DB_DEBUG", "true")

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Web.AllowOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/foodhub.db", cfg.Database.URL)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "env@example.com", cfg.Mail.Username)
	assert.Equal(t, "secret", cfg.Mail.Password)
}

func TestLoadConfigMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb", cfg.Database.Type)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)

	t.Setenv("FOODHUB_DB_TYPE", "bolt")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Database.Type)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfile, []byte("web: [unclosed"), 0o600))

	_, err := LoadConfig(cfile)
	assert.Error(t, err)
}

func TestLoadConfigBadIntIgnored(t *testing.T) {
	t.Setenv("FOODHUB_WEB_PORT", "not-a-port")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Web.Port)
}

func TestLoadConfigLogRotation(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Logger.MaxSizeMB)
	assert.Equal(t, 7, cfg.Logger.MaxBackups)
	assert.False(t, cfg.Logger.FileEnable)

	t.Setenv("FOODHUB_LOGGER_FILE", "/tmp/foodhub/app.log")
	t.Setenv("FOODHUB_LOGGER_MAX_SIZE", "16")
	t.Setenv("FOODHUB_LOGGER_MAX_AGE", "30")
	t.Setenv("FOODHUB_LOGGER_COMPRESS", "true")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Logger.FileEnable)
	assert.Equal(t, "/tmp/foodhub/app.log", cfg.Logger.Filename)
	assert.Equal(t, 16, cfg.Logger.MaxSizeMB)
	assert.Equal(t, 30, cfg.Logger.MaxAgeDays)
	assert.Equal(t, 7, cfg.Logger.MaxBackups)
	assert.True(t, cfg.Logger.Compress)
}
