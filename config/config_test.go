package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"HTTP_ADDR", "LOG_LEVEL", "MINIO_SERVER", "MINIO_PORT_API_EXTERNAL", "MINIO_ROOT_USER",
	"MINIO_ROOT_PASSWORD", "MINIO_USE_SSL", "MINIO_BUCKET", "TIMETRACKER_INPUT_PREFIX",
	"TIMETRACKER_OUTPUT_PREFIX", "PRESIGN_TTL", "POSTGRESQL_SERVER", "POSTGRES_PORT_EXTERNAL",
	"POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD", "KAFKA_BROKERS", "KAFKA_TOPIC",
}

// clearEnv blanks every setting for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "estec", cfg.Bucket)
	assert.Equal(t, "data/POD/TimeTracker/Output/", cfg.OutputPrefix)
	assert.Equal(t, time.Hour, cfg.PresignTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINIO_SERVER", "minio")
	t.Setenv("MINIO_PORT_API_EXTERNAL", "9000")
	t.Setenv("MINIO_ROOT_USER", "root")
	t.Setenv("MINIO_ROOT_PASSWORD", "secret")
	t.Setenv("POSTGRESQL_SERVER", "db")
	t.Setenv("POSTGRES_DB", "evisor")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PRESIGN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "minio:9000", cfg.MinIOEndpoint)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.PresignTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are set, so unset the one under test.
	require.NoError(t, os.Unsetenv("MINIO_BUCKET"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MINIO_BUCKET=reports\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MINIO_BUCKET") })

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "reports", cfg.Bucket)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESIGN_TTL", "soon")

	_, err := Load()
	require.ErrorContains(t, err, "PRESIGN_TTL")
}
