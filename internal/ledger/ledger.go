// =============================================================================
// Branch Sales Aggregator - Ledger
// =============================================================================
//
// The ledger maps a branch code to its display name and running total.
// Iteration follows insertion order, which is the order of branch.lst, so the
// report is deterministic.
//
// LIFECYCLE:
//   1. branchlist.Load adds every branch once (totals start at zero)
//   2. aggregator.Aggregate folds amounts in; no code is added after load
//   3. report.Write iterates the entries in insertion order
//
// =============================================================================

package ledger

import (
	"fmt"

	"github.com/ginjaninja78/branch-sales/internal/types"
)

// entry is a ledger row. Totals only change through Set.
type entry struct {
	name  string
	total uint64
}

// Ledger is an insertion-ordered mapping of branch code to name and total.
// It is not safe for concurrent use; a run mutates it from one goroutine.
type Ledger struct {
	order   []string
	entries map[string]*entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		entries: make(map[string]*entry),
	}
}

// Add registers a branch with a zero total.
// It returns an error if the code is already present.
func (l *Ledger) Add(code, name string) error {
	if _, exists := l.entries[code]; exists {
		return fmt.Errorf("duplicate branch code %q", code)
	}
	l.entries[code] = &entry{name: name}
	l.order = append(l.order, code)
	return nil
}

// Has reports whether code was loaded.
func (l *Ledger) Has(code string) bool {
	_, ok := l.entries[code]
	return ok
}

// Total returns the running total for code.
func (l *Ledger) Total(code string) (uint64, bool) {
	e, ok := l.entries[code]
	if !ok {
		return 0, false
	}
	return e.total, true
}

// Set replaces the running total for code. Callers check limits first.
func (l *Ledger) Set(code string, total uint64) error {
	e, ok := l.entries[code]
	if !ok {
		return fmt.Errorf("unknown branch code %q", code)
	}
	e.total = total
	return nil
}

// Len returns the number of branches.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Codes returns the branch codes in insertion order.
func (l *Ledger) Codes() []string {
	codes := make([]string, len(l.order))
	copy(codes, l.order)
	return codes
}

// Branches returns a snapshot of every row in insertion order.
func (l *Ledger) Branches() []types.Branch {
	branches := make([]types.Branch, 0, len(l.order))
	for _, code := range l.order {
		e := l.entries[code]
		branches = append(branches, types.Branch{
			Code:  code,
			Name:  e.name,
			Total: e.total,
		})
	}
	return branches
}
