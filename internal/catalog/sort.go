package catalog

import (
	"sort"

	"golang.org/x/text/cases"
)

// SortByName returns a copy of items ordered by display name, ignoring case.
// Items with equal folded names keep their relative order.
func SortByName(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	fold := cases.Fold()
	keys := make([]string, len(items))
	idx := make([]int, len(items))
	for i, item := range items {
		keys[i] = fold.String(item.Name)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})
	out := make([]Item, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
