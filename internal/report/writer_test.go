package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/ledger"
	"github.com/ginjaninja78/branch-sales/internal/types"
)

func sampleLedger(t *testing.T) *ledger.Ledger {
	l := ledger.New()
	require.NoError(t, l.Add("001", "Tokyo"))
	require.NoError(t, l.Add("002", "Osaka"))
	require.NoError(t, l.Add("003", "Nagoya"))
	require.NoError(t, l.Set("001", 3000))
	require.NoError(t, l.Set("002", 500))
	return l
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "001,Tokyo,3000\n", FormatLine(types.Branch{Code: "001", Name: "Tokyo", Total: 3000}))
	assert.Equal(t, "042,Sapporo Kita,0\n", FormatLine(types.Branch{Code: "042", Name: "Sapporo Kita", Total: 0}))
	assert.Equal(t, "999,X,9999999999\n", FormatLine(types.Branch{Code: "999", Name: "X", Total: 9999999999}))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleLedger(t).Branches()))
	assert.Equal(t, "001,Tokyo,3000\n002,Osaka,500\n003,Nagoya,0\n", buf.String())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sales", 0755))
	require.NoError(t, afero.WriteFile(fs, "/sales/branch.out", []byte("stale\n"), 0644))

	require.NoError(t, Write(fs, "/sales/branch.out", sampleLedger(t)))

	data, err := afero.ReadFile(fs, "/sales/branch.out")
	require.NoError(t, err)
	assert.Equal(t, "001,Tokyo,3000\n002,Osaka,500\n003,Nagoya,0\n", string(data))
}

func TestWriteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/sales", 0755))

	err := Write(afero.NewReadOnlyFs(base), "/sales/branch.out", sampleLedger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrOutputWriteFailure))

	exists, err := afero.Exists(base, "/sales/branch.out")
	require.NoError(t, err)
	assert.False(t, exists)
}
