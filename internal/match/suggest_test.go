package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	ranked := Rank("Totl", []string{"ID", "Total", "Totals", "Paid"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "Total", ranked[0].Name)
	assert.Equal(t, "Totals", ranked[1].Name)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestClosest(t *testing.T) {
	got, ok := Closest("renam", []string{"skip", "flatten", "rename", "callback"})
	assert.True(t, ok)
	assert.Equal(t, "rename", got)

	got, ok = Closest("format_cents", []string{"FormatCents", "ParseCents"})
	assert.True(t, ok)
	assert.Equal(t, "FormatCents", got)

	_, ok = Closest("zzz", []string{"skip", "rename"})
	assert.False(t, ok)

	_, ok = Closest("x", nil)
	assert.False(t, ok)
}
