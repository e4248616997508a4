package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowc/internal/config"
)

func TestDefaultConfigHasNoCSEDisabledAndInfoLogging(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "./out", cfg.ExtractDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DisableCSE)
}

func TestLoadOverridesOnlyTheFieldsAPartialDocumentSets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./out", cfg.ExtractDir, "unset fields must keep their Default() value")
}

func TestLoadParsesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowc.yaml")
	doc := "extractDir: /tmp/out\nlogLevel: warning\ndisableCSE: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.ExtractDir)
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.True(t, cfg.DisableCSE)
}

func TestLoadReturnsDefaultsAndAnErrorForAMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadReturnsAnErrorForMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: [unterminated\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
