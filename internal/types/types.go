// =============================================================================
// Branch Sales Aggregator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - discovery
//   - validation
//   - record
//   - aggregator
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPES
// =============================================================================

// RecordFile is one discovered daily sales file.
// It is created during discovery and consumed exactly once during aggregation.
type RecordFile struct {
	// DateStamp is the 8-digit file name stem parsed as an integer.
	// Used only for sequence comparison and ordering.
	DateStamp int

	// Name is the base file name, e.g. "00010101.rcd".
	// Diagnostics name files by this value.
	Name string

	// Path is the full path used to open the file.
	Path string
}

// ParsedRecord is the content of one record file once validated.
type ParsedRecord struct {
	// BranchCode is line 1 of the record file.
	BranchCode string

	// Amount is line 2 of the record file.
	Amount uint64
}

// =============================================================================
// BRANCH TYPES
// =============================================================================

// Branch is one ledger row as it appears in the report.
type Branch struct {
	Code  string
	Name  string
	Total uint64
}
