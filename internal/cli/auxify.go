// Package cli orchestrates a run: it loads the code table, merges every
// target dictionary file and writes the result in the selected output mode.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/rime-x/wanxiang-dict/internal/auxcode"
	"github.com/rime-x/wanxiang-dict/internal/config"
	"github.com/rime-x/wanxiang-dict/internal/dict"
	"github.com/rime-x/wanxiang-dict/internal/report"
)

// ErrAmbiguousMode reports an invalid target selection. It is returned
// before any file is touched.
var ErrAmbiguousMode = errors.New("specify exactly one of --file and --dir")

type Options struct {
	MoqiPath   string
	FilePath   string
	DirPath    string
	OutDir     string
	DryRun     bool
	Inplace    bool
	Backup     bool
	ReportPath string
}

type Runner struct {
	config       *config.Config
	options      Options
	table        auxcode.Table
	stdoutWriter io.Writer
	added        *color.Color
	removed      *color.Color
}

func NewRunner(cfg *config.Config, options Options) (*Runner, error) {
	if (options.FilePath == "") == (options.DirPath == "") {
		return nil, ErrAmbiguousMode
	}

	return &Runner{
		config:       cfg,
		options:      options,
		stdoutWriter: os.Stdout,
		added:        color.New(color.FgGreen),
		removed:      color.New(color.FgRed),
	}, nil
}

// Run processes every target file sequentially. In batch mode a failing file
// is logged and counted while the remaining files continue; the failure
// count is returned as an error at the end so the process exits non-zero.
func (r *Runner) Run() error {
	table, err := auxcode.Load(r.options.MoqiPath)
	if err != nil {
		return fmt.Errorf("auxcode.Load() > %w", err)
	}
	r.table = table

	files, outDir, err := r.resolveTargets()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(r.stdoutWriter, "No files found to process.")
		return nil
	}

	if !r.options.DryRun && !r.options.Inplace {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", outDir, err)
		}
	}

	summary := report.Summary{GeneratedAt: time.Now().UTC()}
	for _, path := range files {
		result, err := r.processFile(path, outDir)
		if err != nil {
			if r.options.FilePath != "" {
				return fmt.Errorf("process %s > %w", path, err)
			}
			slog.Error("failed to process a dictionary file", "file", path, "error", err)
			summary.Failures = append(summary.Failures, report.Failure{File: path, Error: err.Error()})
			continue
		}
		summary.Files = append(summary.Files, result)
		summary.RowsChanged += result.RowsChanged
	}

	fmt.Fprintf(r.stdoutWriter, "Done. Total files processed: %d, total lines modified: %d\n", len(files), summary.RowsChanged)

	if r.options.ReportPath != "" {
		if err := report.Write(r.options.ReportPath, summary); err != nil {
			return fmt.Errorf("report.Write() > %w", err)
		}
	}

	if failed := len(summary.Failures); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// resolveTargets returns the files to process and the output directory for
// non-inplace runs. Batch selection is non-recursive and matches file names
// against the configured suffix list.
func (r *Runner) resolveTargets() ([]string, string, error) {
	if r.options.FilePath != "" {
		if _, err := os.Stat(r.options.FilePath); err != nil {
			return nil, "", fmt.Errorf("dictionary file not found: %s: %w", r.options.FilePath, err)
		}
		outDir := r.options.OutDir
		if outDir == "" {
			outDir = r.config.Outputs.SingleFileDirectory
		}
		return []string{r.options.FilePath}, outDir, nil
	}

	info, err := os.Stat(r.options.DirPath)
	if err != nil {
		return nil, "", fmt.Errorf("directory not found: %s: %w", r.options.DirPath, err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("not a directory: %s", r.options.DirPath)
	}

	entries, err := os.ReadDir(r.options.DirPath)
	if err != nil {
		return nil, "", fmt.Errorf("os.ReadDir(%s) > %w", r.options.DirPath, err)
	}
	// os.ReadDir sorts by file name, so batch order is deterministic.
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !r.matchesSuffix(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(r.options.DirPath, entry.Name()))
	}

	outDir := r.options.OutDir
	if outDir == "" {
		outDir = r.config.Outputs.BatchDirectory
	}
	return files, outDir, nil
}

func (r *Runner) matchesSuffix(name string) bool {
	for _, suffix := range r.config.Dictionaries.Suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (r *Runner) processFile(path string, outDir string) (report.FileResult, error) {
	result := report.FileResult{File: path}

	contents, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	parsed, err := dict.Parse(path, contents)
	if err != nil {
		return result, fmt.Errorf("dict.Parse() > %w", err)
	}

	merged, changed := dict.Merge(parsed, r.table)
	result.RowsChanged = changed
	if changed == 0 {
		fmt.Fprintf(r.stdoutWriter, "%s: no changes\n", path)
		return result, nil
	}

	switch {
	case r.options.DryRun:
		if err := r.printDiff(path, string(contents), merged.String(), changed); err != nil {
			return result, err
		}
	case r.options.Inplace:
		if r.options.Backup {
			backupPath, err := r.writeBackup(path, contents)
			if err != nil {
				return result, err
			}
			result.Backup = backupPath
		}
		if err := writeInplace(path, merged.String()); err != nil {
			return result, err
		}
		fmt.Fprintf(r.stdoutWriter, "Wrote %d modifications into %s\n", changed, path)
	default:
		outPath := filepath.Join(outDir, filepath.Base(path))
		if err := os.WriteFile(outPath, []byte(merged.String()), 0o644); err != nil {
			return result, fmt.Errorf("os.WriteFile(%s) > %w", outPath, err)
		}
		result.Output = outPath
		fmt.Fprintf(r.stdoutWriter, "Wrote %d modifications to %s\n", changed, outPath)
	}
	return result, nil
}

func (r *Runner) printDiff(path string, before string, after string, changed int) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (with-aux)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("difflib.GetUnifiedDiffString() > %w", err)
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			_, _ = r.added.Fprint(r.stdoutWriter, line)
		case strings.HasPrefix(line, "-"):
			_, _ = r.removed.Fprint(r.stdoutWriter, line)
		default:
			fmt.Fprint(r.stdoutWriter, line)
		}
	}
	fmt.Fprintf(r.stdoutWriter, "\nPlanned changes for %s: %d lines modified.\n", path, changed)
	return nil
}

// writeBackup copies the original next to itself with a timestamped .bak
// name and verifies the copy before the original may be overwritten.
func (r *Runner) writeBackup(path string, contents []byte) (string, error) {
	stamp := time.Now().UTC().Format(r.config.Backups.TimestampLayout)
	backupPath := fmt.Sprintf("%s.%s.bak", path, stamp)
	if err := os.WriteFile(backupPath, contents, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", backupPath, err)
	}

	written, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", backupPath, err)
	}
	if !bytes.Equal(written, contents) {
		return "", fmt.Errorf("backup %s does not match the original", backupPath)
	}

	fmt.Fprintf(r.stdoutWriter, "Backup written to: %s\n", backupPath)
	return backupPath, nil
}

// writeInplace replaces path through a temporary file in the same directory
// so a failed write never leaves a truncated original behind.
func writeInplace(path string, contents string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("os.Stat(%s) > %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	if _, err := tmp.WriteString(contents); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("tmp.WriteString() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("os.Chmod() > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("os.Rename() > %w", err)
	}
	return nil
}
