// Package commands implements the CLI commands for bak.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/bak/internal/backup"
	"github.com/thoreinstein/bak/internal/config"
	bakerrors "github.com/thoreinstein/bak/internal/errors"
	"github.com/thoreinstein/bak/internal/logging"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
var version = "0.1.0"

// Mode flags.
var (
	keep     bool
	restore  bool
	flip     bool
	symlinks bool
	diffMode bool
	diffTool string
	listMode bool
	choose   bool
)

// Logging flags.
var (
	verbosity int
	quiet     bool
	logFormat string
	logFile   string
)

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// cfg is the effective configuration after Load.
var cfg *config.Config

func init() {
	cobra.OnInitialize(initConfig)

	f := rootCmd.Flags()
	f.BoolVarP(&keep, "keep", "k", false,
		"copy instead of move, leaving the source in place")
	f.BoolVarP(&restore, "restore", "r", false,
		"restore targets from their backups")
	f.BoolVarP(&flip, "flip", "f", false,
		"restore, backing up an existing destination first (implies --restore)")
	f.BoolVarP(&symlinks, "symlinks", "s", false,
		"preserve symlinks when copying instead of following them")
	f.BoolVarP(&diffMode, "diff", "d", false,
		"compare a target against its most recent backup")
	f.StringVar(&diffTool, "difftool", "",
		"diff utility to use with --diff (default from config)")
	f.BoolVarP(&listMode, "list", "l", false,
		"list all backup entries in each given directory")
	f.BoolVarP(&choose, "choose", "c", false,
		"pick the backup interactively instead of using the most recent")

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("bak version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "bak [flags] PATH...",
	Short: "Timestamped file backups that never destroy data",
	Long: `bak creates timestamped backups of files and directories and restores
them. A backup of notes.txt becomes notes.txt.bak.20200314T151234; the
name alone records what was backed up and when, so restoring needs no
metadata beyond the filename.

bak never deletes a backup and never overwrites an existing file on
restore. When a restore destination is occupied, bak refuses unless
--flip is given, which first backs the destination up and then restores
over the freed name.`,
	Example: `  # Move a file to a timestamped backup
  bak notes.txt

  # Back up but keep the original in place
  bak --keep notes.txt

  # Restore the most recent backup of notes.txt
  bak --restore notes.txt

  # Restore a specific backup by naming it
  bak --restore notes.txt.bak.20200314T151234

  # Swap: back up the current file, then restore the chosen backup
  bak --flip notes.txt

  # Compare against the most recent backup
  bak --diff notes.txt

  # List every backup entry in a directory
  bak --list .`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	RunE: runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	if configLoadErr != nil {
		return errors.Wrap(configLoadErr, "loading configuration")
	}

	if len(args) == 0 {
		_ = cmd.Help()
		return bakerrors.NewExitError(errors.New("at least one path is required"), bakerrors.ExitFailure)
	}

	if diffMode && len(args) != 1 {
		return bakerrors.NewDiffUsageError(
			errors.Newf("diff mode takes exactly one path, got %d", len(args)))
	}

	tool := diffTool
	if tool == "" {
		tool = cfg.DiffTool
	}

	runner := backup.NewRunner(backup.Modes{
		Keep:             keep,
		Flip:             flip,
		PreserveSymlinks: symlinks || cfg.PreserveSymlinks,
		Choose:           choose,
		DiffTool:         tool,
	},
		backup.WithOutput(cmd.OutOrStdout()),
		backup.WithLogger(logging.FromContext(cmd.Context())),
	)

	var res backup.Result
	switch {
	case diffMode:
		return runner.Diff(args[0])
	case listMode:
		res = runner.List(args)
	case restore || flip:
		res = runner.Restore(args)
	default:
		res = runner.Backup(args)
	}

	if !res.Ok() {
		// Per-target failures were already reported as they happened;
		// the exit code is the only thing left to communicate.
		return bakerrors.NewExitError(nil, bakerrors.ExitFailure)
	}
	return nil
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.New("cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BAK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.Wrap(err, "opening log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return bakerrors.ExitSuccess
	}

	var exitErr *bakerrors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "bak: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "bak: %v\n", err)
	return bakerrors.ExitFailure
}
