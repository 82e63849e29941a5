// Package auxcode loads the moqi auxiliary code table that maps a character
// to the shape codes appended to its pinyin entry.
package auxcode

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const fieldDelimiter = "\t"

// Entry holds the auxiliary codes of a single character in the order the
// table lists them. Duplicate codes are kept as given.
type Entry struct {
	Char  string
	Codes []string
}

type Table map[string]Entry

// Load reads a tab-separated code table file and returns its entries.
func Load(path string) (Table, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return Parse(string(contents)), nil
}

// Parse builds a table from the contents of a code table. Blank lines and
// `#` comments are skipped. A line that does not carry a character and at
// least one code is skipped with a warning rather than failing the whole
// load; the table is large and a single bad line should not abort a run.
// When a character appears on more than one line, the first line wins.
func Parse(contents string) Table {
	table := make(Table)
	for i, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, fieldDelimiter)
		char := fields[0]
		var codes []string
		for _, field := range fields[1:] {
			if field != "" {
				codes = append(codes, field)
			}
		}
		if char == "" || len(codes) == 0 {
			slog.Warn("skipping malformed code table line", "line", i+1)
			continue
		}

		if _, ok := table[char]; ok {
			continue
		}
		table[char] = Entry{Char: char, Codes: codes}
	}
	return table
}
