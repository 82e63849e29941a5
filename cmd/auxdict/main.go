package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rime-x/wanxiang-dict/internal/cli"
	"github.com/rime-x/wanxiang-dict/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		debugMode  bool
		options    cli.Options
	)
	rootCommand := &cobra.Command{
		Use:           "auxdict",
		Short:         "Append auxiliary input codes from a moqi code table to Rime dictionary files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewConfigLoader(configFile)
			if err != nil {
				return fmt.Errorf("config.NewConfigLoader() > %w", err)
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("loader.Load() > %w", err)
			}

			runner, err := cli.NewRunner(cfg, options)
			if err != nil {
				return err
			}
			return runner.Run()
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	flags := rootCommand.Flags()
	flags.StringVar(&options.MoqiPath, "moqi", "", "path to the moqi auxiliary code table")
	flags.StringVar(&options.FilePath, "file", "", "path to a single dictionary file to update (mutually exclusive with --dir)")
	flags.StringVar(&options.DirPath, "dir", "", "directory containing dictionary files to process, non-recursive (mutually exclusive with --file)")
	flags.StringVar(&options.OutDir, "out-dir", "", "output directory for modified files")
	flags.BoolVar(&options.DryRun, "dry-run", false, "print unified diff(s) to stdout and do not modify files")
	flags.BoolVar(&options.Inplace, "inplace", false, "write changes inplace (overwrites originals). Use with care")
	flags.BoolVar(&options.Backup, "backup", false, "make a timestamped backup before writing (only when --inplace is used)")
	flags.StringVar(&options.ReportPath, "report", "", "write a YAML summary of the run to this path")
	_ = rootCommand.MarkFlagRequired("moqi")

	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})),
	)
}
