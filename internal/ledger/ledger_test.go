package ledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/branch-sales/internal/types"
)

func TestInsertionOrder(t *testing.T) {
	l := New()
	// Deliberately not in code order.
	require.NoError(t, l.Add("003", "Nagoya"))
	require.NoError(t, l.Add("001", "Tokyo"))
	require.NoError(t, l.Add("002", "Osaka"))

	assert.Equal(t, []string{"003", "001", "002"}, l.Codes())
	assert.Equal(t, 3, l.Len())

	want := []types.Branch{
		{Code: "003", Name: "Nagoya"},
		{Code: "001", Name: "Tokyo"},
		{Code: "002", Name: "Osaka"},
	}
	if diff := cmp.Diff(want, l.Branches()); diff != "" {
		t.Errorf("Branches() mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateCode(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("001", "Tokyo"))
	require.Error(t, l.Add("001", "Shinjuku"))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "Tokyo", l.Branches()[0].Name)
}

func TestTotals(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("001", "Tokyo"))

	total, ok := l.Total("001")
	require.True(t, ok)
	assert.Zero(t, total)

	require.NoError(t, l.Set("001", 1500))
	total, _ = l.Total("001")
	assert.Equal(t, uint64(1500), total)

	_, ok = l.Total("999")
	assert.False(t, ok)
	assert.Error(t, l.Set("999", 1))
	assert.False(t, l.Has("999"))
	assert.True(t, l.Has("001"))
}

func TestCodesIsACopy(t *testing.T) {
	l := New()
	require.NoError(t, l.Add("001", "Tokyo"))
	codes := l.Codes()
	codes[0] = "999"
	assert.Equal(t, []string{"001"}, l.Codes())
}
