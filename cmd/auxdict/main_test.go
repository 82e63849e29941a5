package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rime-x/wanxiang-dict/internal/cli"
	"github.com/rime-x/wanxiang-dict/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	t.Run("requires the moqi flag", func(t *testing.T) {
		command := newRootCommand()
		command.SetArgs([]string{"--file", "chars.dict.yaml"})
		err := command.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "moqi")
	})

	t.Run("rejects both file and dir", func(t *testing.T) {
		tmpDir := t.TempDir()
		moqiPath := testutil.WriteFile(t, tmpDir, "moqima.txt", testutil.SampleCodeTable)

		command := newRootCommand()
		command.SetArgs([]string{
			"--config", testutil.SetupTestConfig(t, tmpDir),
			"--moqi", moqiPath,
			"--file", "chars.dict.yaml",
			"--dir", "dicts",
		})
		err := command.Execute()
		assert.ErrorIs(t, err, cli.ErrAmbiguousMode)
	})

	t.Run("writes a merged dictionary", func(t *testing.T) {
		tmpDir := t.TempDir()
		moqiPath := testutil.WriteFile(t, tmpDir, "moqima.txt", testutil.SampleCodeTable)
		dictPath := testutil.WriteFile(t, tmpDir, "chars.dict.yaml", testutil.SampleDictionary)
		outDir := filepath.Join(tmpDir, "out")

		command := newRootCommand()
		command.SetArgs([]string{
			"--config", testutil.SetupTestConfig(t, tmpDir),
			"--moqi", moqiPath,
			"--file", dictPath,
			"--out-dir", outDir,
		})
		require.NoError(t, command.Execute())

		written, err := os.ReadFile(filepath.Join(outDir, "chars.dict.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(written), "中\tzhong1;vj\t100\n")
	})
}
