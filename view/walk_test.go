package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tree := SortedMap[string, View]{
		"user": SortedMap[string, View]{
			"name": String("ada"),
			"tags": Seq[String]{"x", "y"},
		},
	}

	v, ok := Lookup(tree, "user.tags.1")
	require.True(t, ok)
	assert.Equal(t, String("y"), v)

	self, ok := Lookup(tree, "")
	require.True(t, ok)
	assert.Equal(t, tree, self)

	for _, path := range []string{"user.age", "user.name.x", "user.tags.2", "nope"} {
		_, ok := Lookup(tree, path)
		assert.False(t, ok, path)
	}

	_, ok = Lookup(nil, "a")
	assert.False(t, ok)
}

func TestRenderKey(t *testing.T) {
	t.Parallel()

	m := SortedMap[string, Number[int]]{"n": Num(9)}

	var b strings.Builder
	hit, err := RenderKey(m, "n", &b)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "9", b.String())

	hit, err = RenderKey(m, "x", &b)
	require.NoError(t, err)
	assert.False(t, hit)

	r, err := NewRecord([]Field{{Name: "n", Value: Num(1)}})
	require.NoError(t, err)
	b.Reset()
	hit, err = RenderKey(r, "n", &b)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "1", b.String())
}

func TestIterAndCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 0, Count(Iter(String("x"))))
	assert.Equal(t, 2, Count(Iter(Seq[Bool]{true, false})))
}

func TestLenMatchesContextIter(t *testing.T) {
	t.Parallel()

	rec, err := NewRecord([]Field{{Name: "a", Value: Num(1)}})
	require.NoError(t, err)

	containers := []View{
		Seq[String]{"a", "b"},
		SliceOf([]int{1, 2, 3}, func(e *int) View { return Num(*e) }),
		Map[string, Bool]{"t": true},
		SortedMap[string, Bool]{"t": true, "f": false},
		Some(Seq[String]{"a"}),
		Ok(Map[string, String]{}),
		Ref(&Seq[String]{"x"}),
		Any(map[string]any{"a": 1, "b": []any{1}}),
		rec,
	}
	for _, v := range containers {
		require.NotNil(t, v.ContextIter())
		assert.Equal(t, v.Len(), Count(v.ContextIter()))
		assert.Contains(t, []TypeEnum{TypeArray, TypeObject}, v.Type())
	}
}

func TestSelfPointerEveryKind(t *testing.T) {
	t.Parallel()

	kinds := []View{
		Num(1), Bool(true), String("s"), Null{},
		Some(String("s")), None[String](), Ok(Num(1)), Fail[Bool](nil),
		Seq[String]{"a"}, Map[string, String]{"k": "v"}, SortedMap[string, String]{"k": "v"},
		Pair[String]{Key: "k", Value: "v"}, Ref(&Seq[String]{}), RenderFunc(nil),
		Any([]any{"x"}),
	}
	for _, v := range kinds {
		for _, key := range []string{".", ""} {
			got, ok := v.Pointer(key)
			require.True(t, ok)
			assert.Equal(t, v.Type(), got.Type())
			assert.Equal(t, v.IsTruthy(), got.IsTruthy())
			assert.Equal(t, v.Len(), got.Len())
		}
	}
}
