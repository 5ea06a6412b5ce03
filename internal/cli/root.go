// Package cli implements the cobra-based CLI commands for bxa.
//
// Each subcommand (params, modes, bestfit, posterior, histogram, stats,
// config) is defined in its own file within this package. This file
// defines the root command that serves as the parent for all subcommands
// and handles global flags, logging and the run configuration.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shinji-kodama/bxa/internal/config"
	"github.com/shinji-kodama/bxa/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is the optional YAML run configuration.
	configPath string
)

// State initialised by the root command before any subcommand runs.
var (
	logger = zap.NewNop()
	cfg    = config.Default()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text and global flags, builds the logger and loads the configuration
// file before a subcommand runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bxa",
		Short: "Inspect nested-sampling runs of X-ray spectral fits",
		Long: `bxa reads the output of a nested-sampling run over an X-ray spectral fit:
parameter names, evidence and posterior modes, the best-fit point, the
equally weighted posterior, and histograms of derived flux distributions.

Runs are identified by their output basename, the path prefix the sampler
wrote its files under (default "chains/").`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l

			if configPath == "" {
				cfg = config.Default()
				return nil
			}
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			VerboseLog("Loaded configuration from %s", configPath)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration file")

	rootCmd.AddCommand(NewParamsCommand())
	rootCmd.AddCommand(NewModesCommand())
	rootCmd.AddCommand(NewBestFitCommand())
	rootCmd.AddCommand(NewPosteriorCommand())
	rootCmd.AddCommand(NewHistogramCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// newLogger builds the stderr logger. Only warnings and errors are shown
// unless verbose output is requested.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog emits a debug line, shown only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// basenameArg returns the basename given on the command line, or the
// configured one.
func basenameArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.OutputBasename
}

// outputError maps missing sampler output to ExitOutputNotFound.
func outputError(basename string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return model.WrapCLIError(model.ExitOutputNotFound,
			fmt.Sprintf("sampler output not found under %q", basename), err)
	}
	return err
}
