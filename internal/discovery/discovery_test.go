package discovery

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/branch-sales/internal/failure"
)

const dir = "/sales"

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{
		"00010103.rcd",
		"00010101.rcd",
		"00010102.rcd",
		"branch.lst",
		"branch.out",
		"0001010.rcd",
		"000101011.rcd",
		"00010104.txt",
		"abcdefgh.rcd",
	} {
		require.NoError(t, afero.WriteFile(fs, dir+"/"+name, []byte("x"), 0644))
	}
	// A directory with a record file name is not a record file.
	require.NoError(t, fs.MkdirAll(dir+"/00010104.rcd", 0755))

	files, err := Discover(fs, dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	for i, want := range []struct {
		stamp int
		name  string
	}{
		{10101, "00010101.rcd"},
		{10102, "00010102.rcd"},
		{10103, "00010103.rcd"},
	} {
		assert.Equal(t, want.stamp, files[i].DateStamp)
		assert.Equal(t, want.name, files[i].Name)
		assert.Equal(t, dir+"/"+want.name, files[i].Path)
	}
}

func TestDiscoverSortsNumerically(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"20240102.rcd", "20231231.rcd", "20240101.rcd"} {
		require.NoError(t, afero.WriteFile(fs, dir+"/"+name, []byte("x"), 0644))
	}

	files, err := Discover(fs, dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []int{20231231, 20240101, 20240102},
		[]int{files[0].DateStamp, files[1].DateStamp, files[2].DateStamp})
}

func TestDiscoverEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(dir, 0755))

	files, err := Discover(fs, dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(afero.NewMemMapFs(), "/nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrUnexpected))
}
