package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postmortem.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subdir: MyApp\\Crashes\nlog_level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `MyApp\Crashes`, cfg.SubDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "zstd", cfg.Compression, "unset keys keep their defaults")
	assert.True(t, cfg.HardenPolicy)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("subdir: [unterminated"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("subdir: \"\"\n"), 0644))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postmortem.yaml")
	cfg := Default()
	cfg.Dir = "/var/crash"
	cfg.HardenPolicy = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
