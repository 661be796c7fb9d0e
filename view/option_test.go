package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	t.Parallel()

	some := Some(String("hi"))
	assert.True(t, some.IsTruthy())
	assert.Equal(t, "hi", render(t, some))
	assert.Equal(t, 2, some.RenderCapacityHint())
	assert.Equal(t, TypeString, some.Type())
	assert.Equal(t, 2, some.Len())

	inner, ok := some.Get()
	require.True(t, ok)
	assert.Equal(t, String("hi"), inner)

	none := None[String]()
	assert.False(t, none.IsTruthy())
	assert.Equal(t, "", render(t, none))
	assert.Equal(t, 0, none.RenderCapacityHint())
	assert.Equal(t, TypeNull, none.Type())
	assert.Equal(t, 0, none.Len())
	assert.Nil(t, none.ContextIter())

	var zero Option[String]
	assert.Equal(t, none, zero)
}

func TestOption_PresentButEmpty(t *testing.T) {
	t.Parallel()

	// presence decides truthiness, not the inner value
	o := Some(String(""))
	assert.True(t, o.IsTruthy())
	assert.Equal(t, "", render(t, o))
}

func TestOption_Forwards(t *testing.T) {
	t.Parallel()

	o := Some(SortedMap[string, String]{"k": "v"})
	assert.Equal(t, TypeObject, o.Type())
	assert.Equal(t, 1, Count(o.ContextIter()))

	v, ok := o.Pointer("k")
	require.True(t, ok)
	assert.Equal(t, String("v"), v)

	_, ok = None[SortedMap[string, String]]().Pointer("k")
	assert.False(t, ok)

	self, ok := None[String]().Pointer("")
	require.True(t, ok)
	assert.False(t, self.IsTruthy())
}

func TestResult(t *testing.T) {
	t.Parallel()

	ok := Ok(Num(42))
	assert.True(t, ok.IsTruthy())
	assert.Equal(t, "42", render(t, ok))
	assert.NoError(t, ok.Err())

	boom := errors.New("boom")
	failed := Fail[Number[int]](boom)
	assert.False(t, failed.IsTruthy())
	assert.Equal(t, "", render(t, failed))
	assert.Equal(t, 0, failed.RenderCapacityHint())
	assert.Equal(t, TypeNull, failed.Type())
	assert.Equal(t, 0, failed.Len())
	assert.Nil(t, failed.ContextIter())
	assert.ErrorIs(t, failed.Err(), boom)

	_, present := failed.Get()
	assert.False(t, present)
}

func TestResult_NilError(t *testing.T) {
	t.Parallel()

	r := Fail[String](nil)
	assert.False(t, r.IsTruthy())
	assert.ErrorIs(t, r.Err(), ErrNoValue)

	r = ResultOf(String("x"), nil)
	assert.True(t, r.IsTruthy())
	assert.Equal(t, "x", render(t, r))
}

func TestWrappers_FalsyRenderNothing(t *testing.T) {
	t.Parallel()

	for _, v := range []View{
		None[String](),
		Fail[String](errors.New("x")),
		Ref[String](nil),
		Null{},
	} {
		assert.False(t, v.IsTruthy())
		assert.Equal(t, "", render(t, v))
	}
}
