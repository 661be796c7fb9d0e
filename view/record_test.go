package view

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_Lookup(t *testing.T) {
	t.Parallel()

	r, err := NewRecord([]Field{
		{Name: "a", Value: String("x")},
		{Name: "b", Value: Num(3)},
	})
	require.NoError(t, err)

	a, ok := r.Pointer("a")
	require.True(t, ok)
	assert.Equal(t, "x", render(t, a))

	b, ok := r.Pointer("b")
	require.True(t, ok)
	assert.Equal(t, "3", render(t, b))

	_, ok = r.Pointer("c")
	assert.False(t, ok)

	assert.True(t, r.IsTruthy())
	assert.Equal(t, TypeObject, r.Type())
	assert.Equal(t, 6, r.RenderCapacityHint())
	assert.Equal(t, "", render(t, r))
	assert.Equal(t, 2, r.Len())

	keys, _ := pairs(r)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestNewRecord_Flatten(t *testing.T) {
	t.Parallel()

	scope, err := NewRecord([]Field{{Name: "z", Value: String("zz")}})
	require.NoError(t, err)

	r, err := NewRecord([]Field{
		{Name: "a", Value: String("x")},
		{Name: "f", Value: scope, Flatten: true},
	})
	require.NoError(t, err)

	z, ok := r.Pointer("z")
	require.True(t, ok)
	assert.Equal(t, "zz", render(t, z))

	_, ok = r.Pointer("f")
	assert.False(t, ok, "flattened fields are not directly addressable")

	keys, _ := pairs(r)
	assert.Equal(t, []string{"a", "z"}, keys)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, r.RenderCapacityHint())
}

func TestNewRecord_DirectWinsOverFlatten(t *testing.T) {
	t.Parallel()

	r, err := NewRecord([]Field{
		{Name: "inner", Value: SortedMap[string, String]{"k": "flat"}, Flatten: true},
		{Name: "k", Value: String("direct")},
	})
	require.NoError(t, err)

	v, ok := r.Pointer("k")
	require.True(t, ok)
	assert.Equal(t, "direct", render(t, v))
}

func TestNewRecord_Render(t *testing.T) {
	t.Parallel()

	r, err := NewRecord([]Field{
		{Name: "price", Value: Num(1250), Render: func(w io.Writer) error {
			_, err := io.WriteString(w, "$12.50")
			return err
		}},
		{Name: "none", Value: nil},
	})
	require.NoError(t, err)

	var b strings.Builder
	hit, err := r.RenderField("price", &b)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "$12.50", b.String())

	hit, err = r.RenderField("missing", &b)
	require.NoError(t, err)
	assert.False(t, hit)

	none, ok := r.Pointer("none")
	require.True(t, ok)
	assert.Equal(t, TypeNull, none.Type())
}

func TestNewRecord_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewRecord([]Field{
		{Name: "a", Value: Null{}},
		{Name: "a", Value: Null{}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)

	constant := func(string) uint64 { return 7 }
	_, err = NewRecord([]Field{
		{Name: "a", Value: Null{}},
		{Name: "b", Value: Null{}},
	}, WithFingerprint(constant))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFingerprintCollision)
	assert.Contains(t, err.Error(), `"a" and "b"`)

	// flattened fields take no name and never collide
	_, err = NewRecord([]Field{
		{Name: "a", Value: Null{}},
		{Name: "a", Value: Null{}, Flatten: true},
	})
	assert.NoError(t, err)
}

func TestNewRecord_VerifiesName(t *testing.T) {
	t.Parallel()

	// every key hashes to the same slot; only the stored name may match
	constant := func(string) uint64 { return 1 }
	r, err := NewRecord([]Field{{Name: "a", Value: String("x")}}, WithFingerprint(constant))
	require.NoError(t, err)

	_, ok := r.Pointer("b")
	assert.False(t, ok)
}

func TestNewRecord_Empty(t *testing.T) {
	t.Parallel()

	r, err := NewRecord(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, Count(r.ContextIter()))
	_, ok := r.Pointer("x")
	assert.False(t, ok)
}

func TestNewRecord_SinkError(t *testing.T) {
	t.Parallel()

	r, err := NewRecord([]Field{{Name: "a", Value: String("x")}})
	require.NoError(t, err)

	boom := errors.New("boom")
	hit, err := r.RenderField("a", failingWriter{err: boom})
	assert.True(t, hit)
	assert.ErrorIs(t, err, boom)
}
