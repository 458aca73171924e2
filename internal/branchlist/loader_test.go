package branchlist

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/types"
)

const dir = "/sales"

func writeBranches(t *testing.T, lines ...string) afero.Fs {
	fs := afero.NewMemMapFs()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, afero.WriteFile(fs, dir+"/"+DefaultFileName, []byte(content), 0644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeBranches(t, "001,Tokyo", "002,Osaka", "010,Fukuoka")

	l, err := Load(fs, dir, DefaultFileName)
	require.NoError(t, err)

	want := []types.Branch{
		{Code: "001", Name: "Tokyo"},
		{Code: "002", Name: "Osaka"},
		{Code: "010", Name: "Fukuoka"},
	}
	if diff := cmp.Diff(want, l.Branches()); diff != "" {
		t.Errorf("ledger mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadKeySetMatchesFile(t *testing.T) {
	codes := []string{"100", "007", "042", "999", "000"}
	lines := make([]string, len(codes))
	for i, c := range codes {
		lines[i] = c + ",Branch " + c
	}
	l, err := Load(writeBranches(t, lines...), dir, DefaultFileName)
	require.NoError(t, err)

	assert.Equal(t, codes, l.Codes())
	for _, c := range codes {
		total, ok := l.Total(c)
		require.True(t, ok)
		assert.Zero(t, total)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, dir+"/"+DefaultFileName, nil, 0644))

	l, err := Load(fs, dir, DefaultFileName)
	require.NoError(t, err)
	assert.Zero(t, l.Len())
}

func TestLoadMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(dir, 0755))

	_, err := Load(fs, dir, DefaultFileName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrBranchFileMissing))
}

func TestLoadDirectoryIsMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(dir+"/"+DefaultFileName, 0755))

	_, err := Load(fs, dir, DefaultFileName)
	assert.True(t, errors.Is(err, failure.ErrBranchFileMissing))
}

func TestLoadInvalidFormat(t *testing.T) {
	cases := map[string][]string{
		"short code":   {"001,Tokyo", "02,Osaka"},
		"three fields": {"001,Tokyo,Extra"},
		"no name":      {"001,"},
		"no comma":     {"001 Tokyo"},
		"blank line":   {"001,Tokyo", "", "002,Osaka"},
		"duplicate":    {"001,Tokyo", "001,Shinjuku"},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeBranches(t, lines...), dir, DefaultFileName)
			require.Error(t, err)
			assert.True(t, errors.Is(err, failure.ErrInvalidBranchFormat))
			assert.Equal(t, failure.InvalidBranchFormat, failure.KindOf(err))
		})
	}
}

func TestParseStopsAtFirstMalformedLine(t *testing.T) {
	_, err := Parse("branch.lst", []string{"001,Tokyo", "bad", "also bad"})
	var fe *failure.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "branch.lst", fe.File)
	assert.Contains(t, fe.Detail, "line 2")
}
