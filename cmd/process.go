// =============================================================================
// Branch Sales Aggregator - Process Command
// =============================================================================
//
// This file defines the 'process' command, the run controller. It supplies
// the directory to the pipeline and turns the result into an exit status.
//
// COMMAND USAGE:
//   salescalc process <dir> [flags]
//
// FLAGS:
//   --xlsx     : Also write the workbook report (branch.xlsx)
//   --lenient  : Skip the sequence check and the 10-digit total limit
//
// PROCESSING PIPELINE:
//   1. Load branch.lst
//   2. Discover record files
//   3. Validate the record file sequence
//   4. Aggregate record files into branch totals
//   5. Write branch.out
//
// =============================================================================

package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/branch-sales/internal/config"
	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// writeXLSX also writes the workbook report.
var writeXLSX bool

// lenient disables the sequence and limit checks.
var lenient bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process <dir>",
	Short: "Aggregate the record files in a directory into branch.out",
	Long: `The process command loads branch.lst from the given directory, finds every
record file named by an 8-digit date stamp with the .rcd extension, and
writes the per-branch totals to branch.out.

The run stops at the first problem and prints one diagnostic:
  - branch.lst is missing or malformed
  - record file names are not a contiguous sequence
  - a record file is not two lines, names an unknown branch, or has a
    non-numeric amount
  - a branch total reaches 10 digits

branch.out is only written when every check passes.`,

	Args: exactlyOneDir,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("xlsx") {
			cfg.WriteXLSX = writeXLSX
		}
		if cmd.Flags().Changed("lenient") {
			cfg.Lenient = lenient
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return runProcess(afero.NewOsFs(), args[0], cfg, logger)
	},
}

// exactlyOneDir rejects any invocation without exactly one directory.
func exactlyOneDir(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return failure.New(failure.Unexpected).
			WithDetail("expected 1 directory argument, got %d", len(args))
	}
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&writeXLSX,
		"xlsx",
		false,
		"Also write the report as an XLSX workbook",
	)

	processCmd.Flags().BoolVar(
		&lenient,
		"lenient",
		false,
		"Skip the sequence check and the 10-digit total limit",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess runs the pipeline over dir and returns its failure, if any.
func runProcess(fs afero.Fs, dir string, cfg *config.Config, logger *zap.Logger) error {
	result := pipeline.New(fs, dir, pipeline.Options{
		BranchFile: cfg.BranchFile,
		OutputFile: cfg.OutputFile,
		XLSXFile:   cfg.XLSXFile,
		WriteXLSX:  cfg.WriteXLSX,
		Lenient:    cfg.Lenient,
		Logger:     logger,
	}).Run()

	if !result.OK() {
		if result.Err == nil {
			return failure.New(failure.Unexpected).WithDetail("run stopped at %s", result.Stage)
		}
		return result.Err
	}
	return nil
}
