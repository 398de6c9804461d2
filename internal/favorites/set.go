package favorites

import (
	"sort"
	"strings"
)

// Set is an immutable set of favorited catalog ids. Operations that change
// membership return a new Set; a Set handed to a reader never changes under it.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a Set from ids, ignoring blanks and duplicates.
func NewSet(ids ...string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Has reports whether id is a favorite.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of favorites.
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle returns a copy of s with id removed when present or added when
// absent, and whether id was added.
func (s Set) Toggle(id string) (Set, bool) {
	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	_, present := next[id]
	if present {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return Set{ids: next}, !present
}

// Equal reports whether s and other hold the same ids.
func (s Set) Equal(other Set) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	return "{" + strings.Join(s.IDs(), ", ") + "}"
}
