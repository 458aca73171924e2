// =============================================================================
// Branch Sales Aggregator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the salescalc CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   salescalc process <dir>   - Aggregate the record files in <dir> into branch.out
//   salescalc version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra), the run controller
//   - internal/      : Loaders, validation, aggregation and report writing
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/branch-sales/cmd"
)

// main calls the Execute function from the cmd package, which initializes
// and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
