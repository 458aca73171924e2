package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/branch-sales/internal/failure"
)

func TestWriteXLSX(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sales", 0755))

	require.NoError(t, WriteXLSX(fs, "/sales/branch.xlsx", sampleLedger(t)))

	data, err := afero.ReadFile(fs, "/sales/branch.xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Code", "Name", "Total"},
		{"001", "Tokyo", "3000"},
		{"002", "Osaka", "500"},
		{"003", "Nagoya", "0"},
	}, rows)
}

func TestWriteXLSXFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/sales", 0755))

	err := WriteXLSX(afero.NewReadOnlyFs(base), "/sales/branch.xlsx", sampleLedger(t))
	assert.True(t, errors.Is(err, failure.ErrOutputWriteFailure))
}
