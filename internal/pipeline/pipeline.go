// =============================================================================
// Branch Sales Aggregator - Pipeline
// =============================================================================
//
// This module runs one aggregation over a directory. It sequences the stages
// and records where the run stopped.
//
// STATE MACHINE:
//   Start -> BranchesLoaded -> FilesDiscovered -> SequenceValidated
//         -> Aggregated -> ReportWritten -> Done
//
//   Any transition may move to Failed instead. Failed and Done are terminal
//   and no stage is retried.
//
// ORDERING:
//   Every record file name is checked for contiguity before the first record
//   file is opened, so a gap is reported even when a later file is malformed.
//   Nothing is written unless aggregation succeeded. The workbook, when
//   enabled, is written before branch.out.
//
// =============================================================================

package pipeline

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ginjaninja78/branch-sales/internal/aggregator"
	"github.com/ginjaninja78/branch-sales/internal/branchlist"
	"github.com/ginjaninja78/branch-sales/internal/discovery"
	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/report"
	"github.com/ginjaninja78/branch-sales/internal/types"
	"github.com/ginjaninja78/branch-sales/internal/validation"
)

// =============================================================================
// STAGES
// =============================================================================

// Stage is a pipeline state.
type Stage int

const (
	Start Stage = iota
	BranchesLoaded
	FilesDiscovered
	SequenceValidated
	Aggregated
	ReportWritten
	Done
	Failed
)

var stageNames = [...]string{
	Start:             "Start",
	BranchesLoaded:    "BranchesLoaded",
	FilesDiscovered:   "FilesDiscovered",
	SequenceValidated: "SequenceValidated",
	Aggregated:        "Aggregated",
	ReportWritten:     "ReportWritten",
	Done:              "Done",
	Failed:            "Failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Unknown"
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == Done || s == Failed
}

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures a run. Zero values fall back to the defaults.
type Options struct {
	// BranchFile is the branch definition file name.
	BranchFile string

	// OutputFile is the summary report file name.
	OutputFile string

	// XLSXFile is the workbook file name, used when WriteXLSX is set.
	XLSXFile string

	// WriteXLSX also writes the workbook report.
	WriteXLSX bool

	// Lenient skips the sequence check and the total limit.
	Lenient bool

	// Logger receives stage transitions. Nil disables logging.
	Logger *zap.Logger
}

// Result is the outcome of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Stage is the terminal stage, Done or Failed.
	Stage Stage

	// FailedAt is the last stage reached before failing.
	FailedAt Stage

	// Err is the failure, nil when Stage is Done.
	Err *failure.Error

	// Ledger holds the totals; partial when the run failed during aggregation.
	Ledger *ledger.Ledger

	// Files are the discovered record files in date order.
	Files []types.RecordFile

	// Stats reports aggregation work.
	Stats aggregator.Stats

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// OK reports whether the run completed.
func (r *Result) OK() bool {
	return r.Stage == Done
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline runs one aggregation over a directory.
type Pipeline struct {
	fs     afero.Fs
	dir    string
	opts   Options
	logger *zap.Logger

	result *Result
}

// New creates a Pipeline for dir. A nil fs means the host filesystem.
func New(fs afero.Fs, dir string, opts Options) *Pipeline {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.BranchFile == "" {
		opts.BranchFile = branchlist.DefaultFileName
	}
	if opts.OutputFile == "" {
		opts.OutputFile = report.DefaultFileName
	}
	if opts.XLSXFile == "" {
		opts.XLSXFile = report.DefaultXLSXFileName
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fs:     fs,
		dir:    dir,
		opts:   opts,
		logger: logger,
	}
}

// Run executes every stage and returns the terminal result.
func (p *Pipeline) Run() *Result {
	start := time.Now()
	p.result = &Result{
		RunID: uuid.New().String(),
		Stage: Start,
	}
	p.logger = p.logger.With(
		zap.String("run_id", p.result.RunID),
		zap.String("dir", p.dir),
	)
	p.logger.Info("starting run", zap.Bool("lenient", p.opts.Lenient))

	p.run()

	p.result.Elapsed = time.Since(start)
	if p.result.OK() {
		p.logger.Info("run complete",
			zap.Int("branches", p.result.Ledger.Len()),
			zap.Int("files", p.result.Stats.FilesProcessed),
			zap.Duration("elapsed", p.result.Elapsed),
		)
	}
	return p.result
}

func (p *Pipeline) run() {
	// =========================================================================
	// STEP 1: LOAD BRANCHES
	// =========================================================================

	l, err := branchlist.Load(p.fs, p.dir, p.opts.BranchFile)
	if err != nil {
		p.fail(err)
		return
	}
	p.result.Ledger = l
	p.advance(BranchesLoaded, zap.Int("branches", l.Len()))

	// =========================================================================
	// STEP 2: DISCOVER RECORD FILES
	// =========================================================================

	files, err := discovery.Discover(p.fs, p.dir)
	if err != nil {
		p.fail(err)
		return
	}
	p.result.Files = files
	p.advance(FilesDiscovered, zap.Int("files", len(files)))

	// =========================================================================
	// STEP 3: VALIDATE SEQUENCE
	// =========================================================================
	// Must finish before any record file is opened.

	if p.opts.Lenient {
		p.logger.Debug("sequence check skipped")
	} else if err := validation.ValidateSequence(files); err != nil {
		p.fail(err)
		return
	}
	p.advance(SequenceValidated)

	// =========================================================================
	// STEP 4: AGGREGATE
	// =========================================================================

	stats, err := aggregator.Aggregate(p.fs, files, l, aggregator.Options{Lenient: p.opts.Lenient})
	p.result.Stats = stats
	if err != nil {
		p.fail(err)
		return
	}
	p.advance(Aggregated, zap.Int("files", stats.FilesProcessed))

	// =========================================================================
	// STEP 5: WRITE REPORT
	// =========================================================================

	// The summary is committed last; its presence means the run succeeded.

	if p.opts.WriteXLSX {
		if err := report.WriteXLSX(p.fs, filepath.Join(p.dir, p.opts.XLSXFile), l); err != nil {
			p.fail(err)
			return
		}
	}
	if err := report.Write(p.fs, filepath.Join(p.dir, p.opts.OutputFile), l); err != nil {
		p.fail(err)
		return
	}
	p.advance(ReportWritten)

	p.advance(Done)
}

// advance records a transition.
func (p *Pipeline) advance(next Stage, fields ...zap.Field) {
	p.logger.Debug("stage reached", append(fields, zap.Stringer("stage", next))...)
	p.result.Stage = next
}

// fail moves the run to Failed.
func (p *Pipeline) fail(err error) {
	fe := failure.From(err)
	p.result.FailedAt = p.result.Stage
	p.result.Stage = Failed
	p.result.Err = fe
	p.logger.Warn("run failed",
		zap.Stringer("kind", fe.Kind),
		zap.String("file", fe.File),
		zap.Stringer("after", p.result.FailedAt),
		zap.Error(fe),
	)
}
