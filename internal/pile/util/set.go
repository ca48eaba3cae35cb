// Package util holds the generic set and stack containers the grammar,
// automaton, and table-builder packages lean on for fixed-point
// computations over finite symbol universes.
package util

import "sort"

// StringSet is a set of strings with the usual set-algebra operations.
// Zero value is not usable; use NewStringSet.
type StringSet map[string]bool

// NewStringSet builds a StringSet containing the given members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet)
	for _, m := range members {
		s[m] = true
	}
	return s
}

// Add inserts x into s and reports whether s changed.
func (s StringSet) Add(x string) bool {
	if s[x] {
		return false
	}
	s[x] = true
	return true
}

// AddAll inserts every member of other into s and reports whether s changed.
func (s StringSet) AddAll(other StringSet) bool {
	changed := false
	for m := range other {
		if s.Add(m) {
			changed = true
		}
	}
	return changed
}

// Has reports whether x is a member of s.
func (s StringSet) Has(x string) bool {
	return s[x]
}

// Remove deletes x from s.
func (s StringSet) Remove(x string) {
	delete(s, x)
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Copy returns a shallow duplicate of s.
func (s StringSet) Copy() StringSet {
	cp := make(StringSet, len(s))
	for m := range s {
		cp[m] = true
	}
	return cp
}

// Union returns a new set containing members of both s and other.
func (s StringSet) Union(other StringSet) StringSet {
	out := s.Copy()
	out.AddAll(other)
	return out
}

// Without returns a new set containing s's members minus other's.
func (s StringSet) Without(other StringSet) StringSet {
	out := make(StringSet, len(s))
	for m := range s {
		if !other.Has(m) {
			out[m] = true
		}
	}
	return out
}

// Elements returns the members in unspecified order.
func (s StringSet) Elements() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	return out
}

// Sorted returns the members sorted lexically, for deterministic output.
func (s StringSet) Sorted() []string {
	out := s.Elements()
	sort.Strings(out)
	return out
}

// Equal reports whether s and other contain exactly the same members.
func (s StringSet) Equal(other StringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if !other.Has(m) {
			return false
		}
	}
	return true
}
