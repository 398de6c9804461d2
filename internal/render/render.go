// Package render expands a favorites list into render items, interleaving
// sponsored placeholders at a fixed cadence.
package render

import (
	"fmt"

	"github.com/five82/stash/internal/catalog"
)

// Kind identifies the variant of an Item.
type Kind int

const (
	KindContent Kind = iota
	KindPlaceholder
)

// Item is one row of a materialized list. Entry is set for KindContent; Slot
// (0-based placeholder ordinal) for KindPlaceholder.
type Item struct {
	Kind  Kind
	Key   string
	Entry catalog.Item
	Slot  int
}

// IsPlaceholder reports whether the row is a sponsored placeholder.
func (i Item) IsPlaceholder() bool {
	return i.Kind == KindPlaceholder
}

// Materialize returns one content row per item, in order. When sponsored is
// true and every > 0, a placeholder follows every every-th content row,
// except after the last one. Content keys are item ids; placeholder keys
// never collide with them.
func Materialize(items []catalog.Item, sponsored bool, every int) []Item {
	if !sponsored || every <= 0 {
		out := make([]Item, len(items))
		for i, item := range items {
			out[i] = content(item)
		}
		return out
	}

	taken := make(map[string]struct{}, len(items))
	for _, item := range items {
		taken[item.ID] = struct{}{}
	}

	out := make([]Item, 0, len(items)+len(items)/every)
	slot := 0
	for i, item := range items {
		out = append(out, content(item))
		n := i + 1
		if n%every != 0 || n == len(items) {
			continue
		}
		out = append(out, Item{
			Kind: KindPlaceholder,
			Key:  placeholderKey(slot, taken),
			Slot: slot,
		})
		slot++
	}
	return out
}

func content(item catalog.Item) Item {
	return Item{Kind: KindContent, Key: item.ID, Entry: item}
}

// placeholderKey derives a key from slot, prefixing "_" until it is not used
// by any content row.
func placeholderKey(slot int, taken map[string]struct{}) string {
	key := fmt.Sprintf("sponsored-%d", slot)
	for {
		if _, clash := taken[key]; !clash {
			return key
		}
		key = "_" + key
	}
}
