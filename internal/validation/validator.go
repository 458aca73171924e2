// =============================================================================
// Branch Sales Aggregator - Validation Rules
// =============================================================================
//
// This module holds the format rules shared by the loaders and the pipeline:
//   - Branch definition lines: "code,name", code is exactly 3 digits
//   - Record file names: exactly 8 digits followed by ".rcd"
//   - Record file shape: exactly 2 lines
//   - Sales amounts: digits only
//   - Record file sequence: sorted date stamps differ by exactly 1
//
// ERROR HANDLING:
//   - Rules that only classify input return bool
//   - ValidateSequence returns a *failure.Error naming the file after the gap
//   - The first violation wins; nothing is collected
//
// =============================================================================

package validation

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/types"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	branchCodePattern = regexp.MustCompile(`^[0-9]{3}$`)
	recordNamePattern = regexp.MustCompile(`^[0-9]{8}\.rcd$`)
	amountPattern     = regexp.MustCompile(`^[0-9]*$`)
)

const (
	// RecordExt is the record file extension.
	RecordExt = ".rcd"

	// DateStampLen is the number of digits in a record file name.
	DateStampLen = 8

	// RecordLines is the required number of lines in a record file.
	RecordLines = 2

	branchFields = 2
)

// =============================================================================
// BRANCH DEFINITION RULES
// =============================================================================

// SplitBranchLine validates one branch.lst line and returns its fields.
//
// A valid line has exactly two comma-separated fields, a 3-digit code and a
// non-empty name. ok is false for any other line.
func SplitBranchLine(line string) (code, name string, ok bool) {
	fields := strings.Split(line, ",")
	if len(fields) != branchFields {
		return "", "", false
	}
	if !branchCodePattern.MatchString(fields[0]) || fields[1] == "" {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// IsBranchCode reports whether s is a well formed branch code.
func IsBranchCode(s string) bool {
	return branchCodePattern.MatchString(s)
}

// =============================================================================
// RECORD FILE RULES
// =============================================================================

// IsRecordFileName reports whether name is a record file name.
func IsRecordFileName(name string) bool {
	return recordNamePattern.MatchString(name)
}

// HasRecordShape reports whether a record file has exactly two lines.
func HasRecordShape(lines []string) bool {
	return len(lines) == RecordLines
}

// IsAmount reports whether s is a digit-only, non-empty amount.
// The empty string matches the digits pattern but cannot be converted, so it
// is rejected here.
func IsAmount(s string) bool {
	return s != "" && amountPattern.MatchString(s)
}

// =============================================================================
// SEQUENCE RULE
// =============================================================================

// ValidateSequence checks that files, sorted by date stamp, form a
// contiguous run. Fewer than two files always pass.
func ValidateSequence(files []types.RecordFile) error {
	for i := 0; i+1 < len(files); i++ {
		former := files[i].DateStamp
		latter := files[i+1].DateStamp
		if latter-former != 1 {
			return failure.New(failure.NonSequentialRecordFiles).
				WithFile(files[i+1].Name).
				WithDetail("%s follows %s", files[i+1].Name, files[i].Name)
		}
	}
	return nil
}
