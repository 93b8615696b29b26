package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "TOURCMS_CONFIG_PATH", "TOURCMS_BIND_ADDRESS",
		"TOURCMS_PORT", "TOURCMS_UPLOADS_ROOT", "TOURCMS_PUBLIC_BASE_URL",
		"TOURCMS_MAX_UPLOAD_BYTES", "TOURCMS_LIST_LIMIT_MAX",
		"TOURCMS_ADMIN_TOKEN_SECRET", "TOURCMS_ADMIN_TOKEN_TTL_MINUTES",
		"TOURCMS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOURCMS_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, 1000, cfg.ListLimitMax)
	assert.Equal(t, 480, cfg.AdminTokenTTLMinutes)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TOURCMS_CONFIG_PATH", dir)

	yml := `
port: 9100
uploads_root: /srv/tourcms/uploads
public_base_url: https://tourcms.example.com
max_upload_bytes: 1048576
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "/srv/tourcms/uploads", cfg.UploadsRoot)
	assert.Equal(t, "https://tourcms.example.com", cfg.PublicBaseURL)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.FilePath())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TOURCMS_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("port: 9100\nlog_level: debug\n"), 0o600))

	t.Setenv("TOURCMS_PORT", "9200")
	t.Setenv("DATABASE_URL", "postgres://localhost/tourcms_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "postgres://localhost/tourcms_test", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TOURCMS_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("port: [not a number\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestAttributesSourcesAndRedaction(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TOURCMS_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("port: 9100\n"), 0o600))
	t.Setenv("TOURCMS_ADMIN_TOKEN_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)

	byName := map[string]Attribute{}
	for _, attr := range cfg.Attributes() {
		byName[attr.Name] = attr
	}

	assert.Equal(t, "file", byName["port"].Source)
	assert.Equal(t, "9100", byName["port"].Value)
	assert.Equal(t, "env", byName["admin_token_secret"].Source)
	assert.Equal(t, "[REDACTED]", byName["admin_token_secret"].Value)
	assert.Equal(t, "default", byName["bind_address"].Source)
}
