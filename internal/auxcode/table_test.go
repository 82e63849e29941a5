package auxcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     Table
	}{
		{
			name:     "single code per character",
			contents: "中\tvj\n国\tll\n",
			want: Table{
				"中": {Char: "中", Codes: []string{"vj"}},
				"国": {Char: "国", Codes: []string{"ll"}},
			},
		},
		{
			name:     "multiple codes preserved in order",
			contents: "中\tvj\tkv\tvj\n",
			want: Table{
				"中": {Char: "中", Codes: []string{"vj", "kv", "vj"}},
			},
		},
		{
			name:     "comments and blank lines are skipped",
			contents: "# moqima table\n\n中\tvj\n   \n# trailing comment\n",
			want: Table{
				"中": {Char: "中", Codes: []string{"vj"}},
			},
		},
		{
			name:     "first occurrence wins on duplicate characters",
			contents: "中\tvj\n中\tkv\n",
			want: Table{
				"中": {Char: "中", Codes: []string{"vj"}},
			},
		},
		{
			name:     "malformed lines are skipped",
			contents: "中\n\tvj\n国\t\n们\tnw\n",
			want: Table{
				"们": {Char: "们", Codes: []string{"nw"}},
			},
		},
		{
			name:     "carriage returns are stripped",
			contents: "中\tvj\r\n国\tll\r\n",
			want: Table{
				"中": {Char: "中", Codes: []string{"vj"}},
				"国": {Char: "国", Codes: []string{"ll"}},
			},
		},
		{
			name:     "empty input",
			contents: "",
			want:     Table{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.contents))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("reads a table from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "moqima.txt")
		require.NoError(t, os.WriteFile(path, []byte("中\tvj\n国\tll\n"), 0o644))

		table, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, table, 2)
		assert.Equal(t, []string{"vj"}, table["中"].Codes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
