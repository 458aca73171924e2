// =============================================================================
// Branch Sales Aggregator - Record Parser
// =============================================================================
//
// This module parses one daily record file into a branch code and amount.
//
// FILE FORMAT:
//   Exactly two lines:
//     001
//     1000
//   Line 1 is a branch code present in branch.lst, line 2 a digit-only amount.
//
// VALIDATION ORDER (each check stops on failure):
//   1. Exactly two lines           -> RecordFileShapeInvalid
//   2. Branch code is in ledger    -> UnknownBranchCode
//   3. Amount is digits only       -> NonNumericAmount
//
// The amount has no upper bound here. The limit applies to the running total
// and is enforced by the aggregator.
//
// =============================================================================

package record

import (
	"errors"
	"strconv"

	"github.com/spf13/afero"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/types"
	"github.com/ginjaninja78/branch-sales/internal/validation"
	"github.com/ginjaninja78/branch-sales/pkg/utils"
)

// Parse reads and validates file against the branches in l.
func Parse(fs afero.Fs, file types.RecordFile, l *ledger.Ledger) (types.ParsedRecord, error) {
	fm := utils.NewFileManager(fs, "")

	lines, err := fm.ReadLines(file.Path)
	if err != nil {
		return types.ParsedRecord{}, failure.New(failure.Unexpected).WithFile(file.Name).Wrap(err)
	}

	return ParseLines(file.Name, lines, l)
}

// ParseLines validates the lines of the record file called name.
func ParseLines(name string, lines []string, l *ledger.Ledger) (types.ParsedRecord, error) {
	if !validation.HasRecordShape(lines) {
		return types.ParsedRecord{}, failure.New(failure.RecordFileShapeInvalid).
			WithFile(name).
			WithDetail("%d lines", len(lines))
	}

	code, amountText := lines[0], lines[1]

	if !l.Has(code) {
		return types.ParsedRecord{}, failure.New(failure.UnknownBranchCode).
			WithFile(name).
			WithDetail("code %q", code)
	}

	if !validation.IsAmount(amountText) {
		return types.ParsedRecord{}, failure.New(failure.NonNumericAmount).
			WithFile(name).
			WithDetail("amount %q", amountText)
	}

	amount, err := strconv.ParseUint(amountText, 10, 64)
	if err != nil {
		// Digits only, so the sole failure left is a value beyond uint64,
		// which no total can hold.
		if errors.Is(err, strconv.ErrRange) {
			return types.ParsedRecord{}, failure.New(failure.TotalOverflow).WithFile(name).Wrap(err)
		}
		return types.ParsedRecord{}, failure.New(failure.NonNumericAmount).WithFile(name).Wrap(err)
	}

	return types.ParsedRecord{
		BranchCode: code,
		Amount:     amount,
	}, nil
}
