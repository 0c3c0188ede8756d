package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/zapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-object-inspector/internal/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.False(t, cfg.Inspect.Recursive)
	assert.True(t, cfg.Inspect.ForceAccess)
	assert.False(t, cfg.Inspect.CycleDetection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stdio", cfg.Server.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/mcp/sse", cfg.Server.Path)
	assert.False(t, cfg.Output.Color)
	assert.NoError(t, cfg.Validate())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "inspector.yaml", `
inspect:
  recursive: true
  cycle_detection: true
log:
  level: debug
server:
  mode: sse
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Inspect.Recursive)
	assert.True(t, cfg.Inspect.CycleDetection)
	assert.True(t, cfg.Inspect.ForceAccess, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sse", cfg.Server.Mode)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/mcp/sse", cfg.Server.Path)
}

func TestLoadJSONAndTOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "inspector.json", `{"inspect": {"force_access": false}, "output": {"color": true}}`))
	require.NoError(t, err)
	assert.False(t, cfg.Inspect.ForceAccess)
	assert.True(t, cfg.Output.Color)

	cfg, err = Load(writeFile(t, "inspector.toml", "[inspect]\nrecursive = true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Inspect.Recursive)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "server:\n  mode: carrier-pigeon\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	prev := log.Log
	t.Cleanup(func() { log.SetLogger(prev) })
	core, logs := observer.New(zap.InfoLevel)
	log.SetLogger(zapr.NewLogger(zap.New(core)))

	dir := t.TempDir()
	t.Chdir(dir)

	cfg := LoadOrDefault()
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Zero(t, logs.Len())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "inspector.yaml"), []byte("inspect: [not, a, map\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inspector.json"), []byte(`{"inspect": {"recursive": true}}`), 0644))

	cfg = LoadOrDefault()
	assert.True(t, cfg.Inspect.Recursive, "next candidate is used")
	entries := logs.FilterMessage("Ignoring config file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "inspector.yaml", entries[0].ContextMap()["file"])

	require.NoError(t, os.Remove(filepath.Join(dir, "inspector.json")))
	assert.Equal(t, DefaultConfig(), LoadOrDefault(), "defaults when nothing loads")
}
