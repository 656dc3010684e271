package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := New("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))
}

func TestUnionDoesNotMutate(t *testing.T) {
	a := New("x")
	b := New("y")
	u := a.Union(b)

	assert.Equal(t, []string{"x", "y"}, Sorted(u))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestSubsetAndEqual(t *testing.T) {
	small := New(1, 2)
	big := New(1, 2, 3)

	assert.True(t, small.SubsetOf(big))
	assert.False(t, big.SubsetOf(small))
	assert.True(t, New[int]().SubsetOf(small))
	assert.True(t, small.Equal(New(2, 1)))
	assert.False(t, small.Equal(big))
}

func TestCloneIsIndependent(t *testing.T) {
	a := New("x")
	c := a.Clone()
	c.Add("y")
	assert.False(t, a.Has("y"))
}

func TestSortedEmptyIsNotNil(t *testing.T) {
	assert.Equal(t, []string{}, Sorted(New[string]()))
	assert.Equal(t, []string{}, Sorted[string](nil))
}
