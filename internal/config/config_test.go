package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 5*time.Second, cfg.GetReadHeaderTimeout())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polygen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
storage:
  backend: sqlite
  path: /tmp/p.db
solver:
  timeout: 250ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/p.db", cfg.Storage.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.GetSolverTimeout())
	assert.Equal(t, "dlx", cfg.Solver.Kind, "unset fields keep defaults")
	assert.Equal(t, 200, cfg.Solver.CountLimit)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"backend":  "storage:\n  backend: mongo\n",
		"solver":   "solver:\n  kind: guess\n",
		"duration": "server:\n  shutdown_timeout: soon\n",
		"yaml":     "server: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "polygen.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POLYGEN_ADDR", "127.0.0.1:7000")
	t.Setenv("POLYGEN_STORAGE", "sqlite")
	t.Setenv("POLYGEN_DATA", "/var/lib/polygen.db")
	t.Setenv("POLYGEN_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/polygen.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "polygen.yaml")
	cfg := DefaultConfig()
	cfg.Solver.Kind = "backtrack"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
