package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50*time.Millisecond, cfg.Server.StepInterval)
	assert.Equal(t, "manhattan", cfg.Search.CostModel)
	assert.Equal(t, 100, cfg.Search.ProgressInterval)
	assert.Equal(t, 20, cfg.Render.CellSize)
	assert.True(t, cfg.Render.Color)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "gridastar.yaml", `
log:
  level: debug
server:
  addr: 127.0.0.1:9000
  stepInterval: 200ms
search:
  diagonal: true
  costModel: accumulated
render:
  cellSize: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 200*time.Millisecond, cfg.Server.StepInterval)
	assert.True(t, cfg.Search.Diagonal)
	assert.Equal(t, "accumulated", cfg.Search.CostModel)
	assert.Equal(t, 8, cfg.Render.CellSize)
	assert.Len(t, cfg.SearchOptions(nil), 5)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GRIDASTAR_SERVER_ADDR", ":7777")
	t.Setenv("GRIDASTAR_SEARCH_DIAGONAL", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.True(t, cfg.Search.Diagonal)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "search:\n  costModel: euclid\n"))
	assert.ErrorContains(t, err, "search.costModel")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
