// =============================================================================
// Branch Sales Aggregator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salescalc)
//   ├── processCmd (salescalc process <dir>)
//   └── versionCmd (salescalc version)
//
// OUTPUT CONTRACT:
//   A failed command prints exactly one diagnostic line on stdout and the
//   process exits with status 1. Logs go to stderr.
//
// =============================================================================

package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/branch-sales/internal/config"
	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means salescalc.yaml in the working directory, if present.
var cfgFile string

// logLevel overrides the configured log level when set.
var logLevel string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "salescalc",
	Short: "Branch sales aggregator - sum daily record files into a branch summary",
	Long: `salescalc reads a directory holding a branch definition file (branch.lst)
and daily sales record files named by an 8-digit date stamp (00010101.rcd),
checks that the record files form a contiguous sequence and are well formed,
and writes the per-branch totals to branch.out in the same directory.

Example Usage:
  salescalc process ./sales              # Aggregate ./sales into ./sales/branch.out
  salescalc process ./sales --xlsx       # Also write ./sales/branch.xlsx`,

	// Errors are rendered as a single diagnostic by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printDiagnostic(rootCmd.OutOrStdout(), err)
		os.Exit(1)
	}
}

// printDiagnostic writes the fixed message for err.
// Errors that carry no failure kind, such as flag parsing errors, render as
// the generic unexpected error.
func printDiagnostic(w io.Writer, err error) {
	fe := failure.From(err)
	_, _ = color.New(color.FgRed).Fprintln(w, fe.Diagnostic())
}

// =============================================================================
// CONFIGURATION AND LOGGING
// =============================================================================

// loadConfig loads the config file and applies the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, failure.New(failure.Unexpected).Wrap(err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger builds the run logger from the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, failure.New(failure.Unexpected).WithDetail("log level %q", cfg.LogLevel).Wrap(err)
	}
	return logger, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultConfigFile+" if present)",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level: debug, info, warn, error or none (overrides the config file)",
	)
}
