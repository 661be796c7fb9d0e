package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "view", PkgAlias("context-generator/view"))
	assert.Equal(t, "io", PkgAlias("io"))
	assert.Equal(t, "", PkgAlias(""))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "order", LowerFirst("Order"))
	assert.Equal(t, "éclair", LowerFirst("Éclair"))
	assert.Equal(t, "", LowerFirst(""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitList("A, B,,"))
	assert.Nil(t, SplitList(""))
}

func TestSlices(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{1, 2}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)
}
