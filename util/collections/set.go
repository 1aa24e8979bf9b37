package collections

import (
	"cmp"
	"slices"
)

type Set[V comparable] map[V]struct{}

// NewSet returns a Set holding the given values
func NewSet[V comparable](values ...V) Set[V] {
	set := make(Set[V], len(values))
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// Add an element to the set
func (set Set[V]) Add(value V) {
	set[value] = struct{}{}
}

// Remove an element from the set (or no-op if element not present)
func (set Set[V]) Remove(value V) {
	delete(set, value)
}

// Toggle removes the element if present, or adds it otherwise. It returns
// whether the element is present afterwards.
func (set Set[V]) Toggle(value V) bool {
	if set.Contains(value) {
		set.Remove(value)
		return false
	}
	set.Add(value)
	return true
}

// Contains returns whether the element exists within the set
func (set Set[V]) Contains(value V) bool {
	_, contains := set[value]
	return contains
}

// ContainsAll returns whether every one of values exists within the set
func (set Set[V]) ContainsAll(values ...V) bool {
	for _, value := range values {
		if !set.Contains(value) {
			return false
		}
	}
	return true
}

func (set Set[V]) Len() int {
	return len(set)
}

// Clone returns a shallow copy of the set
func (set Set[V]) Clone() Set[V] {
	clone := make(Set[V], len(set))
	for value := range set {
		clone.Add(value)
	}
	return clone
}

// Difference returns a new Set containing all elements from the calling set
// not present in the other set
func (set Set[V]) Difference(other Set[V]) Set[V] {
	difference := make(Set[V])
	for value := range set {
		if !other.Contains(value) {
			difference.Add(value)
		}
	}
	return difference
}

// Sorted returns the elements of set in ascending order
func Sorted[V cmp.Ordered](set Set[V]) []V {
	values := make([]V, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	slices.Sort(values)
	return values
}
