// Package testutil provides shared test fixtures: sample dictionary and
// code table contents, and helpers to lay them out on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rime-x/wanxiang-dict/internal/config"
)

// SampleDictionary is a minimal Rime dictionary: a comment, a YAML metadata
// block and three data rows, one of them without a weight.
const SampleDictionary = "# Rime dictionary\n" +
	"---\n" +
	"name: chars\n" +
	"version: \"1.0\"\n" +
	"...\n" +
	"中\tzhong1\t100\n" +
	"国\tguo2\t90\n" +
	"的\tde5\n"

// SampleCodeTable covers two of the three sample dictionary characters.
const SampleCodeTable = "# moqima table\n" +
	"中\tvj\n" +
	"国\tll\n"

// WriteFile writes contents under dir and returns the file path.
func WriteFile(t *testing.T, dir string, name string, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// Config returns a configuration with the shipped defaults, except that
// output directories point below tmpDir so tests never write into the
// working directory.
func Config(tmpDir string) *config.Config {
	return &config.Config{
		Outputs: config.OutputsConfig{
			SingleFileDirectory: filepath.Join(tmpDir, "auxified", "moqi"),
			BatchDirectory:      filepath.Join(tmpDir, "auxified"),
		},
		Dictionaries: config.DictionariesConfig{
			Suffixes: []string{".dict.yaml", ".yaml", ".txt"},
		},
		Backups: config.BackupsConfig{
			TimestampLayout: "20060102T150405Z",
		},
	}
}

// SetupTestConfig writes a config file mirroring Config(tmpDir) and returns
// its path, for tests that exercise the command line end to end.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	contents := "outputs:\n" +
		"  single_file_directory: " + filepath.Join(tmpDir, "auxified", "moqi") + "\n" +
		"  batch_directory: " + filepath.Join(tmpDir, "auxified") + "\n"
	return WriteFile(t, tmpDir, "config.yaml", contents)
}
