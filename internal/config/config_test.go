package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 168*time.Hour, cfg.TokenTTL)
	require.Equal(t, 2*time.Millisecond, cfg.LoaderWait)
	require.Equal(t, 100, cfg.LoaderMaxBatch)
	require.Equal(t, 2, cfg.PreviewWorkers)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=9000\nJWT_SECRET=from-file\nPREVIEW_WORKERS=4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOADER_WAIT", "5ms")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "from-env", cfg.JWTSecret)
	require.Equal(t, 4, cfg.PreviewWorkers)
	require.Equal(t, 5*time.Millisecond, cfg.LoaderWait)
	require.False(t, cfg.IsRelease())
}
