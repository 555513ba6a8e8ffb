package level

import "math/bits"

// Set is a compact set of dense ordinals backed by a bit vector.
// The zero value is an empty set ready for use. Sets grow on demand,
// so the same type serves skill sets and visited-stage sets.
type Set struct {
	words []uint64
}

// NewSet creates a set containing the given ordinals.
func NewSet(ordinals ...int) Set {
	var s Set
	for _, o := range ordinals {
		s.Add(o)
	}
	return s
}

// Add inserts an ordinal into the set. Negative ordinals are ignored;
// they are the "unregistered" marker returned by Registry lookups.
func (s *Set) Add(ordinal int) {
	if ordinal < 0 {
		return
	}
	word := ordinal / 64
	for len(s.words) <= word {
		s.words = append(s.words, 0)
	}
	s.words[word] |= 1 << uint(ordinal%64)
}

// Has reports whether the ordinal is in the set.
func (s Set) Has(ordinal int) bool {
	word := ordinal / 64
	if ordinal < 0 || word >= len(s.words) {
		return false
	}
	return s.words[word]&(1<<uint(ordinal%64)) != 0
}

// Union adds every element of other to the set.
func (s *Set) Union(other Set) {
	for len(s.words) < len(other.words) {
		s.words = append(s.words, 0)
	}
	for i, w := range other.words {
		s.words[i] |= w
	}
}

// ContainsAll reports whether every element of other is in the set.
// An empty set is a subset of anything.
func (s Set) ContainsAll(other Set) bool {
	for i, w := range other.words {
		if i >= len(s.words) {
			if w != 0 {
				return false
			}
			continue
		}
		if w&^s.words[i] != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy. Mutating the copy never affects
// the original, which is what branch-local path state relies on.
func (s Set) Clone() Set {
	if len(s.words) == 0 {
		return Set{}
	}
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return Set{words: words}
}

// Len returns the number of elements in the set.
func (s Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Ordinals returns the elements in ascending order.
func (s Set) Ordinals() []int {
	out := make([]int, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, i*64+bit)
			w &= w - 1
		}
	}
	return out
}
