package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetToggle(t *testing.T) {
	set := NewSet[int]()

	assert.True(t, set.Toggle(7))
	assert.True(t, set.Contains(7))
	assert.False(t, set.Toggle(7))
	assert.False(t, set.Contains(7))
	assert.Equal(t, 0, set.Len())
}

func TestSetContainsAll(t *testing.T) {
	set := NewSet(1, 2, 3)

	assert.True(t, set.ContainsAll(1, 3))
	assert.True(t, set.ContainsAll())
	assert.False(t, set.ContainsAll(1, 4))
}

func TestSetCloneIsIndependent(t *testing.T) {
	set := NewSet(1, 2)
	clone := set.Clone()
	clone.Add(3)

	assert.False(t, set.Contains(3))
	assert.Equal(t, []int{1, 2, 3}, Sorted(clone))
}

func TestSetDifference(t *testing.T) {
	diff := NewSet(1, 2, 3, 4).Difference(NewSet(2, 4, 6))
	assert.Equal(t, []int{1, 3}, Sorted(diff))
}
