// =============================================================================
// Branch Sales Aggregator - Branch Directory Loader
// =============================================================================
//
// This module parses the branch definition file (branch.lst) into a ledger.
//
// FILE FORMAT:
//   One branch per line, "code,name":
//     001,Tokyo
//     002,Osaka
//   The code is exactly 3 digits; leading zeros are significant.
//
// LOADING PROCESS:
//   1. Fail with BranchFileMissing if the file is absent (nothing is read)
//   2. Read every line (the handle is released before validation starts)
//   3. Validate lines in order; the first malformed line stops loading
//   4. Register each branch in the ledger with a zero total
//
// =============================================================================

package branchlist

import (
	"github.com/spf13/afero"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/validation"
	"github.com/ginjaninja78/branch-sales/pkg/utils"
)

// DefaultFileName is the branch definition file name.
const DefaultFileName = "branch.lst"

// Load reads dir/name and returns a ledger holding every branch in file order.
//
// RETURNS:
//   - The ledger, every total at zero.
//   - BranchFileMissing if the file does not exist.
//   - InvalidBranchFormat for the first malformed or duplicate line.
//   - Unexpected for any other read failure.
func Load(fs afero.Fs, dir, name string) (*ledger.Ledger, error) {
	fm := utils.NewFileManager(fs, dir)

	exists, err := fm.IsRegularFile(name)
	if err != nil {
		return nil, failure.New(failure.Unexpected).WithFile(name).Wrap(err)
	}
	if !exists {
		return nil, failure.New(failure.BranchFileMissing).WithFile(name)
	}

	lines, err := fm.ReadLines(name)
	if err != nil {
		return nil, failure.New(failure.Unexpected).WithFile(name).Wrap(err)
	}

	return Parse(name, lines)
}

// Parse builds a ledger from already-read branch.lst lines.
// name is only used to label failures.
func Parse(name string, lines []string) (*ledger.Ledger, error) {
	l := ledger.New()

	for i, line := range lines {
		code, branchName, ok := validation.SplitBranchLine(line)
		if !ok {
			return nil, failure.New(failure.InvalidBranchFormat).
				WithFile(name).
				WithDetail("line %d: %q", i+1, line)
		}

		if err := l.Add(code, branchName); err != nil {
			return nil, failure.New(failure.InvalidBranchFormat).
				WithFile(name).
				WithDetail("line %d", i+1).
				Wrap(err)
		}
	}

	return l, nil
}
