// =============================================================================
// Branch Sales Aggregator - XLSX Report
// =============================================================================
//
// Optional companion to branch.out: the same (code, name, total) tuples as a
// workbook for people who open reports in a spreadsheet.
//
// WORKBOOK STRUCTURE:
//   | Column A | Column B | Column C |
//   |----------|----------|----------|
//   | Code     | Name     | Total    |
//   | 001      | Tokyo    | 3000     |
//   | 002      | Osaka    | 500      |
//
//   Codes are stored as text so leading zeros survive.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/types"
	"github.com/ginjaninja78/branch-sales/pkg/utils"
)

// DefaultXLSXFileName is the workbook file name.
const DefaultXLSXFileName = "branch.xlsx"

// SheetName is the worksheet holding the report.
const SheetName = "Branches"

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

var xlsxHeader = []string{"Code", "Name", "Total"}

// WriteXLSX writes the ledger to path as a workbook.
func WriteXLSX(fs afero.Fs, path string, l *ledger.Ledger) error {
	fm := utils.NewFileManager(fs, filepath.Dir(path))
	name := filepath.Base(path)

	err := fm.WriteFileAtomic(name, func(w io.Writer) error {
		return EncodeXLSX(w, l.Branches())
	})
	if err != nil {
		return failure.New(failure.OutputWriteFailure).WithFile(name).Wrap(err)
	}
	return nil
}

// EncodeXLSX builds the workbook for branches and writes it to w.
func EncodeXLSX(w io.Writer, branches []types.Branch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range xlsxHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}

	for i, b := range branches {
		row := i + 2
		if err := setCell(f, 1, row, b.Code); err != nil {
			return err
		}
		if err := setCell(f, 2, row, b.Name); err != nil {
			return err
		}
		// Totals stay below 10^10 in strict mode; lenient totals beyond int64
		// are written as text.
		var total any
		if b.Total <= math.MaxInt64 {
			total = int64(b.Total)
		} else {
			total = strconv.FormatUint(b.Total, 10)
		}
		if err := setCellValue(f, 3, row, total); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// setCell writes a string cell at 1-based (col, row).
func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellStr(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}

// setCellValue writes a typed cell at 1-based (col, row).
func setCellValue(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}
