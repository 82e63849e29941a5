// Package dict parses Rime dictionary files into a line-preserving model and
// merges auxiliary codes into their pinyin fields.
//
// A dictionary file is a YAML metadata block followed by tab-separated data
// rows of character, pinyin and optional trailing fields. Everything that is
// not a data row is carried through byte for byte.
package dict

import (
	"errors"
	"fmt"
	"strings"
)

const (
	fieldDelimiter = "\t"

	// auxSeparator splits the plain pinyin from appended auxiliary codes
	// inside the pinyin field, as in "zhong1;vj".
	auxSeparator = ";"
)

// ErrMalformedRow reports a tab-bearing line whose character or pinyin field
// is empty. Such a line is neither a valid row nor opaque metadata, so it is
// rejected instead of being passed through.
var ErrMalformedRow = errors.New("malformed dictionary row")

// Row is a parsed data row. Rest holds any fields after the pinyin, usually a
// weight, verbatim.
type Row struct {
	Char   string
	Pinyin string
	Rest   []string
}

// Line is one input line. Row is nil for pass-through lines. Text is the raw
// line including its original line ending and is kept in sync with Row.
type Line struct {
	Text string
	Row  *Row
}

// File is an ordered sequence of lines. Serializing an unmodified File
// reproduces its input exactly.
type File struct {
	Name  string
	Lines []Line
}

// Parse reads dictionary contents into a File. A line is a data row when it
// is not blank, not a `#` comment, not a YAML document marker and contains at
// least one tab; everything else passes through opaquely.
func Parse(name string, contents []byte) (*File, error) {
	file := &File{Name: name}
	for i, text := range splitAfterLines(string(contents)) {
		body, _ := splitEnding(text)
		trimmed := strings.TrimSpace(body)
		if trimmed == "" || strings.HasPrefix(body, "#") || trimmed == "---" || trimmed == "..." {
			file.Lines = append(file.Lines, Line{Text: text})
			continue
		}
		if !strings.Contains(body, fieldDelimiter) {
			file.Lines = append(file.Lines, Line{Text: text})
			continue
		}

		fields := strings.Split(body, fieldDelimiter)
		if fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("%s line %d: %w", name, i+1, ErrMalformedRow)
		}
		file.Lines = append(file.Lines, Line{
			Text: text,
			Row: &Row{
				Char:   fields[0],
				Pinyin: fields[1],
				Rest:   fields[2:],
			},
		})
	}
	return file, nil
}

// String serializes the file back to its textual form.
func (f *File) String() string {
	var builder strings.Builder
	for _, line := range f.Lines {
		builder.WriteString(line.Text)
	}
	return builder.String()
}

// Rows returns the data rows in file order.
func (f *File) Rows() []Row {
	var rows []Row
	for _, line := range f.Lines {
		if line.Row != nil {
			rows = append(rows, *line.Row)
		}
	}
	return rows
}

// splitAfterLines splits contents after every newline, keeping the newline
// with its line. A file without a trailing newline yields a final line
// without one.
func splitAfterLines(contents string) []string {
	if contents == "" {
		return nil
	}
	lines := strings.SplitAfter(contents, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitEnding separates a raw line into its body and its original line
// ending ("", "\n" or "\r\n").
func splitEnding(text string) (body string, ending string) {
	body = strings.TrimSuffix(text, "\n")
	body = strings.TrimSuffix(body, "\r")
	return body, text[len(body):]
}
