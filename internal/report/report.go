// Package report renders a run summary as YAML.
package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Summary struct {
	GeneratedAt time.Time    `yaml:"generated_at"`
	Files       []FileResult `yaml:"files"`
	RowsChanged int          `yaml:"rows_changed"`
	Failures    []Failure    `yaml:"failures,omitempty"`
}

type FileResult struct {
	File        string `yaml:"file"`
	RowsChanged int    `yaml:"rows_changed"`
	Output      string `yaml:"output,omitempty"`
	Backup      string `yaml:"backup,omitempty"`
}

type Failure struct {
	File  string `yaml:"file"`
	Error string `yaml:"error"`
}

func Write(path string, summary Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(summary)
}
