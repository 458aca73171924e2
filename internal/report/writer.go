// =============================================================================
// Branch Sales Aggregator - Report Writer
// =============================================================================
//
// This module serializes the ledger to the summary file (branch.out).
//
// OUTPUT FORMAT:
//   One line per branch, in ledger (branch.lst) order, every line terminated:
//     001,Tokyo,3000
//     002,Osaka,500
//
// WRITE STRATEGY:
//   The report is written to a temporary sibling and renamed into place, so a
//   failed run never leaves a half-written branch.out. Any failure is
//   reported as OutputWriteFailure.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/types"
	"github.com/ginjaninja78/branch-sales/pkg/utils"
)

// DefaultFileName is the summary file name.
const DefaultFileName = "branch.out"

// lineTerminator ends every report line, including the last.
const lineTerminator = "\n"

// Write writes the ledger to path.
func Write(fs afero.Fs, path string, l *ledger.Ledger) error {
	fm := utils.NewFileManager(fs, filepath.Dir(path))
	name := filepath.Base(path)

	err := fm.WriteFileAtomic(name, func(w io.Writer) error {
		return Encode(w, l.Branches())
	})
	if err != nil {
		return failure.New(failure.OutputWriteFailure).WithFile(name).Wrap(err)
	}
	return nil
}

// Encode writes one "code,name,total" line per branch.
func Encode(w io.Writer, branches []types.Branch) error {
	for _, b := range branches {
		if _, err := io.WriteString(w, FormatLine(b)); err != nil {
			return fmt.Errorf("failed to write branch %s: %w", b.Code, err)
		}
	}
	return nil
}

// FormatLine renders one terminated report line.
func FormatLine(b types.Branch) string {
	return b.Code + "," + b.Name + "," + strconv.FormatUint(b.Total, 10) + lineTerminator
}
