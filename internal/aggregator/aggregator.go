// =============================================================================
// Branch Sales Aggregator - Aggregator
// =============================================================================
//
// This module folds validated record files into the ledger.
//
// AGGREGATION:
//   Files are processed in the order given, which the pipeline guarantees is
//   the sequence-validated ascending date order. For each file:
//     1. Parse it with the record parser
//     2. Compute the prospective branch total
//     3. Fail with TotalOverflow if it reaches the limit; the ledger keeps the
//        previous total and no later file is processed
//     4. Commit the new total
//
// LENIENT MODE:
//   Options.Lenient drops the 10-digit limit. Wrap-around of the 64-bit
//   total is still reported as TotalOverflow.
//
// =============================================================================

package aggregator

import (
	"math/bits"

	"github.com/spf13/afero"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/record"
	"github.com/ginjaninja78/branch-sales/internal/types"
)

// TotalLimit is the first total that is not allowed (10 digits overflow).
const TotalLimit uint64 = 10_000_000_000

// Options tunes aggregation.
type Options struct {
	// Lenient disables the TotalLimit check.
	Lenient bool
}

// Stats counts the work done by Aggregate.
type Stats struct {
	// FilesProcessed is the number of files folded into the ledger.
	FilesProcessed int
}

// Aggregate folds every file into l.
// It stops at the first failing file; Stats reflects the files folded so far.
func Aggregate(fs afero.Fs, files []types.RecordFile, l *ledger.Ledger, opts Options) (Stats, error) {
	var stats Stats

	for _, file := range files {
		rec, err := record.Parse(fs, file, l)
		if err != nil {
			return stats, err
		}

		if err := Fold(l, file.Name, rec, opts); err != nil {
			return stats, err
		}

		stats.FilesProcessed++
	}

	return stats, nil
}

// Fold adds one parsed record to l. name labels a failure.
func Fold(l *ledger.Ledger, name string, rec types.ParsedRecord, opts Options) error {
	current, ok := l.Total(rec.BranchCode)
	if !ok {
		return failure.New(failure.UnknownBranchCode).
			WithFile(name).
			WithDetail("code %q", rec.BranchCode)
	}

	next, carry := bits.Add64(current, rec.Amount, 0)
	if carry != 0 || (!opts.Lenient && next >= TotalLimit) {
		return failure.New(failure.TotalOverflow).
			WithFile(name).
			WithDetail("branch %s: %d + %d", rec.BranchCode, current, rec.Amount)
	}

	if err := l.Set(rec.BranchCode, next); err != nil {
		return failure.New(failure.Unexpected).WithFile(name).Wrap(err)
	}
	return nil
}
