package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_NAME", "catalog")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 3*time.Second, cfg.ResolveTimeout)
	assert.Equal(t, 24*time.Hour, cfg.QRCacheTTL)
	assert.Equal(t, 60, cfg.ViewRateLimit)
	assert.False(t, cfg.RedisEnabled())
	assert.Error(t, cfg.RequireMinio())
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PUBLIC_BASE_URL", "https://ar.example.com/")
	t.Setenv("RESOLVE_TIMEOUT", "500ms")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "key")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("MINIO_BUCKET", "models")
	t.Setenv("MINIO_SSL", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://ar.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.ResolveTimeout)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.MinioSSL)
	assert.NoError(t, cfg.RequireMinio())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("RESOLVE_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_TEST_A=file\nCATALOG_TEST_B=file\n"), 0o600))
	t.Setenv("CATALOG_TEST_A", "env")
	t.Cleanup(func() { os.Unsetenv("CATALOG_TEST_B") })

	LoadEnvFile(path)
	assert.Equal(t, "env", os.Getenv("CATALOG_TEST_A"))
	assert.Equal(t, "file", os.Getenv("CATALOG_TEST_B"))

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}
