package dict

import (
	"strings"

	"github.com/rime-x/wanxiang-dict/internal/auxcode"
)

// Merge returns a copy of f in which every row whose character has an entry
// in table gains that entry's codes at the end of its pinyin field, plus the
// number of rows changed. A row whose pinyin already contains the separator
// is left alone, which keeps the merge idempotent. Pass-through lines, row
// order and the row count never change, and f itself is not modified.
func Merge(f *File, table auxcode.Table) (*File, int) {
	out := &File{Name: f.Name, Lines: make([]Line, len(f.Lines))}
	changed := 0
	for i, line := range f.Lines {
		out.Lines[i] = line
		if line.Row == nil {
			continue
		}
		entry, ok := table[line.Row.Char]
		if !ok || strings.Contains(line.Row.Pinyin, auxSeparator) {
			continue
		}

		row := *line.Row
		row.Pinyin += auxSeparator + strings.Join(entry.Codes, auxSeparator)

		fields := append([]string{row.Char, row.Pinyin}, row.Rest...)
		_, ending := splitEnding(line.Text)
		out.Lines[i] = Line{
			Text: strings.Join(fields, fieldDelimiter) + ending,
			Row:  &row,
		}
		changed++
	}
	return out, changed
}
