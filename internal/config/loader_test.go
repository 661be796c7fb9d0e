package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"context-generator/internal/directive"
)

const sample = `
version: "1"
output: records_view.go
records:
  - type: Order
    fields:
      Total: rename=total,callback=FormatCents
      ID: rename=order_id
    rename:
      ID: id
      Paid: paid
    skip: revision
    flatten: [Audit]
  - type: Line
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "records_view.go", f.Output)
	assert.Equal(t, []string{"Order", "Line"}, f.Types())

	order := f.Record("Order")
	require.NotNil(t, order)
	assert.Equal(t, StringOrArray{"revision"}, order.Skip)
	assert.Equal(t, StringOrArray{"Audit"}, order.Flatten)

	assert.Equal(t, map[string]string{
		"Total":    "rename=total,callback=FormatCents",
		"ID":       "rename=order_id",
		"Paid":     "rename=paid",
		"revision": "skip",
		"Audit":    "flatten",
	}, order.Overrides())
	assert.Equal(t, []string{"Audit", "ID", "Paid", "Total", "revision"}, order.FieldNames())

	assert.Nil(t, f.Record("Missing"))
	assert.Empty(t, f.Record("Line").Overrides())
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("records: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)

	f, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Records)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"version", `version: "2"`, ErrVersion},
		{"no type", "records:\n  - fields: {A: skip}\n", ErrInvalid},
		{"twice", "records:\n  - type: A\n  - type: A\n", ErrInvalid},
		{"bad directive", "records:\n  - type: A\n    fields: {X: 'renam=x'}\n", directive.ErrUnknownKey},
		{"conflict", "records:\n  - type: A\n    fields: {X: 'skip,rename=x'}\n", directive.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("unknown: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte("records: {"))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
