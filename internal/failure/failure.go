// =============================================================================
// Branch Sales Aggregator - Failure Taxonomy
// =============================================================================
//
// Every condition that stops a run is one of a closed set of kinds. Each
// component detects its own failures, wraps them in an *Error carrying the
// kind and the offending file, and returns the value unchanged to the caller.
// The run controller renders exactly one diagnostic from it.
//
// USAGE:
//   return failure.New(failure.UnknownBranchCode).WithFile(name)
//   ...
//   if errors.Is(err, failure.ErrTotalOverflow) { ... }
//
// =============================================================================

package failure

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// KINDS
// =============================================================================

// Kind identifies a terminal failure condition.
type Kind int

const (
	// Unexpected covers generic I/O failures, handle close failures and bad
	// invocations.
	Unexpected Kind = iota
	BranchFileMissing
	InvalidBranchFormat
	NonSequentialRecordFiles
	RecordFileShapeInvalid
	UnknownBranchCode
	NonNumericAmount
	TotalOverflow
	OutputWriteFailure
)

var kindNames = map[Kind]string{
	Unexpected:               "Unexpected",
	BranchFileMissing:        "BranchFileMissing",
	InvalidBranchFormat:      "InvalidBranchFormat",
	NonSequentialRecordFiles: "NonSequentialRecordFiles",
	RecordFileShapeInvalid:   "RecordFileShapeInvalid",
	UnknownBranchCode:        "UnknownBranchCode",
	NonNumericAmount:         "NonNumericAmount",
	TotalOverflow:            "TotalOverflow",
	OutputWriteFailure:       "OutputWriteFailure",
}

// fileToken is replaced by the offending file name in a diagnostic.
const fileToken = "<file>"

// diagnostics holds the fixed, user-facing message for each kind.
var diagnostics = map[Kind]string{
	Unexpected:               "an unexpected error occurred",
	BranchFileMissing:        "branch definition file does not exist",
	InvalidBranchFormat:      "branch definition file format is invalid",
	NonSequentialRecordFiles: "sales file names are not sequential",
	RecordFileShapeInvalid:   fileToken + " format is invalid",
	UnknownBranchCode:        fileToken + " has an invalid branch code",
	NonNumericAmount:         fileToken + " sales amount is not numeric",
	TotalOverflow:            "total amount exceeded 10 digits",
	OutputWriteFailure:       "failed to write " + fileToken,
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// =============================================================================
// SENTINELS
// =============================================================================
// Sentinels let callers test the kind with errors.Is without a type assertion.
// They are for comparison only; build returned errors with New.

var (
	ErrUnexpected               = New(Unexpected)
	ErrBranchFileMissing        = New(BranchFileMissing)
	ErrInvalidBranchFormat      = New(InvalidBranchFormat)
	ErrNonSequentialRecordFiles = New(NonSequentialRecordFiles)
	ErrRecordFileShapeInvalid   = New(RecordFileShapeInvalid)
	ErrUnknownBranchCode        = New(UnknownBranchCode)
	ErrNonNumericAmount         = New(NonNumericAmount)
	ErrTotalOverflow            = New(TotalOverflow)
	ErrOutputWriteFailure       = New(OutputWriteFailure)
)

// =============================================================================
// ERROR
// =============================================================================

// Error is a terminal run failure.
type Error struct {
	// Kind is the failure condition.
	Kind Kind

	// File is the base name of the offending file, if any.
	File string

	// Detail is extra context for logs, such as a line number.
	// It never appears in the diagnostic.
	Detail string

	err error
}

var _ error = (*Error)(nil)

// New returns an Error of the given kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// WithFile records the offending file name.
func (e *Error) WithFile(name string) *Error {
	e.File = name
	return e
}

// WithDetail records extra context.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap a nested error.
func (e *Error) Wrap(err error) *Error {
	e.err = err
	return e
}

// Error message, meant for logs.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.File != "" {
		b.WriteString(" [")
		b.WriteString(e.File)
		b.WriteString("]")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}
	return b.String()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Diagnostic renders the fixed user-facing message.
func (e *Error) Diagnostic() string {
	msg, ok := diagnostics[e.Kind]
	if !ok {
		msg = diagnostics[Unexpected]
	}
	return strings.ReplaceAll(msg, fileToken, e.File)
}

// =============================================================================
// HELPERS
// =============================================================================

// KindOf reports the kind of err. Errors that are not an *Error are
// Unexpected.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unexpected
}

// From returns err as an *Error, wrapping unknown errors as Unexpected.
// It returns nil for a nil error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return New(Unexpected).Wrap(err)
}
