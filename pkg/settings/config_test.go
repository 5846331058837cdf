package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Name, cfg.Name)
	assert.Equal(t, "http://localhost:2024", cfg.BaseURL)
	assert.Equal(t, 180, cfg.RequestTimeout)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeoutDuration())
	assert.Equal(t, "wx", cfg.ChannelType)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.False(t, cfg.MinioEnabled())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FINAI_MODEL", "qwen-turbo")
	t.Setenv("FINAI_BASE_URL", "http://finai.local:2024")
	t.Setenv("REQUEST_TIMEOUT", "30")
	t.Setenv("MINIO_URL", "minio.local:9000")
	t.Setenv("MINIO_BUCKET_NAME", "finai")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "qwen-turbo", cfg.Model)
	assert.Equal(t, "http://finai.local:2024", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeoutDuration())
	assert.True(t, cfg.MinioEnabled())
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("FINAI_REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(fn, []byte("FINAI_CHANNEL_TYPE=wechatcom_app\nFINAI_RETRY_DELAY=5s\n"), 0o600))
	t.Setenv("FINAI_RETRY_DELAY", "1s")
	t.Cleanup(func() { os.Unsetenv("FINAI_CHANNEL_TYPE") })

	require.NoError(t, LoadDotenv(fn))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wechatcom_app", cfg.ChannelType)
	assert.Equal(t, time.Second, cfg.RetryDelay)

	assert.NoError(t, LoadDotenv(filepath.Join(dir, "missing.env")))
}
