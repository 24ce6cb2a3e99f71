package progress

import (
	"encoding/json"
	"slices"
)

// IntSet is a set of integer ids. It encodes as a sorted JSON array.
type IntSet map[int]struct{}

// NewIntSet creates a set holding ids.
func NewIntSet(ids ...int) IntSet {
	s := make(IntSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was newly added.
func (s IntSet) Add(id int) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is in the set.
func (s IntSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s IntSet) clone() IntSet {
	return NewIntSet(s.Sorted()...)
}

func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IntSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIntSet(ids...)
	return nil
}

// StringSet is a set of string keys. It encodes as a sorted JSON array.
type StringSet map[string]struct{}

// NewStringSet creates a set holding keys.
func NewStringSet(keys ...string) StringSet {
	s := make(StringSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts key and reports whether it was newly added.
func (s StringSet) Add(key string) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

// Has reports whether key is in the set.
func (s StringSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (s StringSet) clone() StringSet {
	return NewStringSet(s.Sorted()...)
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewStringSet(keys...)
	return nil
}
