package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	t.Run("defaults when no config file exists", func(t *testing.T) {
		loader, err := NewConfigLoader(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)

		// An explicitly named but missing file is an error; the defaults
		// path is only taken when no file was named at all.
		_, err = loader.Load()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("{}\n"), 0o644))

		loader, err := NewConfigLoader(configFile)
		require.NoError(t, err)
		cfg, err := loader.Load()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("auxified", "moqi"), cfg.Outputs.SingleFileDirectory)
		assert.Equal(t, "auxified", cfg.Outputs.BatchDirectory)
		assert.Equal(t, []string{".dict.yaml", ".yaml", ".txt"}, cfg.Dictionaries.Suffixes)
		assert.Equal(t, "20060102T150405Z", cfg.Backups.TimestampLayout)
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		contents := `outputs:
  batch_directory: out
dictionaries:
  suffixes:
    - .dict.yaml
`
		require.NoError(t, os.WriteFile(configFile, []byte(contents), 0o644))

		loader, err := NewConfigLoader(configFile)
		require.NoError(t, err)
		cfg, err := loader.Load()
		require.NoError(t, err)

		assert.Equal(t, "out", cfg.Outputs.BatchDirectory)
		assert.Equal(t, []string{".dict.yaml"}, cfg.Dictionaries.Suffixes)
		// Untouched keys keep their defaults.
		assert.Equal(t, filepath.Join("auxified", "moqi"), cfg.Outputs.SingleFileDirectory)
	})

	t.Run("validation failures are translated", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		contents := `outputs:
  single_file_directory: ""
`
		require.NoError(t, os.WriteFile(configFile, []byte(contents), 0o644))

		loader, err := NewConfigLoader(configFile)
		require.NoError(t, err)
		_, err = loader.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "single_file_directory")
	})

	t.Run("unparsable config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(":\tnot yaml\n"), 0o644))

		loader, err := NewConfigLoader(configFile)
		require.NoError(t, err)
		_, err = loader.Load()
		assert.Error(t, err)
	})
}
