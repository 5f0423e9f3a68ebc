package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .layerex/config.yml when present
// - Load() merges config file with defaults
// - Environment variables override config file values
// - Load() returns error for malformed YAML
// - Validate() accepts the default configuration
// - Validate() rejects empty annotations file path
// - Validate() rejects empty export path
// - Validate() rejects include patterns that do not compile
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, ".layerex/highlights.json", cfg.Annotations.File)
	assert.False(t, cfg.Export.SingleFolder)
	assert.Equal(t, "exported_layer", cfg.Export.Path)
	assert.Empty(t, cfg.Export.Include)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_NoConfigFile(t *testing.T) {
	rootDir := t.TempDir()

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromConfigFile(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".layerex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(`
export:
  single_folder: true
  path: out/layers
  include:
    - "**.py"
`), 0644))

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.True(t, cfg.Export.SingleFolder)
	assert.Equal(t, "out/layers", cfg.Export.Path)
	assert.Equal(t, []string{"**.py"}, cfg.Export.Include)
	// Unset fields keep their defaults.
	assert.Equal(t, ".layerex/highlights.json", cfg.Annotations.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".layerex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(`
export:
  path: from_file
`), 0644))

	t.Setenv("LAYEREX_EXPORT_PATH", "from_env")

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Export.Path)
}

func TestLoad_MalformedYAML(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".layerex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("export: [unclosed"), 0644))

	_, err := LoadConfigFromDir(rootDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestValidate_EmptyFields(t *testing.T) {
	cfg := Default()
	cfg.Annotations.File = "  "
	cfg.Export.Path = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyAnnotationsFile)
	assert.ErrorIs(t, err, ErrEmptyExportPath)
}

func TestValidate_BadIncludePattern(t *testing.T) {
	cfg := Default()
	cfg.Export.Include = []string{"[broken"}

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIncludePattern)
}
