// Package engine recombines the catalog and the favorite set into the
// favorites view.
//
// Combine is pure. CombineLatest re-runs Combine whenever either upstream
// emits, using the most recent value of the other, so a favorites change
// re-filters the last known catalog without fetching it again.
package engine

import (
	"context"

	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/favorites"
)

// Combined is the favorites view derived from one catalog Result and one Set.
// Items is only meaningful for catalog.StatusSuccess, Err only for
// catalog.StatusError.
type Combined struct {
	Status catalog.Status
	Items  []catalog.Item
	Err    error
}

// Combine filters res down to the items whose id is in set, keeping catalog
// order. Loading and Error results pass through regardless of set.
func Combine(res catalog.Result, set favorites.Set) Combined {
	switch res.Status {
	case catalog.StatusError:
		return Combined{Status: catalog.StatusError, Err: res.Err}
	case catalog.StatusSuccess:
		items := make([]catalog.Item, 0, min(len(res.Items), set.Len()))
		for _, item := range res.Items {
			if set.Has(item.ID) {
				items = append(items, item)
			}
		}
		return Combined{Status: catalog.StatusSuccess, Items: items}
	default:
		return Combined{Status: catalog.StatusLoading}
	}
}

// CombineLatest reads both upstreams and calls emit with Combine of the latest
// pair, starting once each upstream has produced a value. emit runs on the
// caller's goroutine in upstream order. A closed upstream keeps its last
// value; CombineLatest returns nil once both are closed and ctx.Err() when ctx
// ends first.
func CombineLatest(ctx context.Context, results <-chan catalog.Result, sets <-chan favorites.Set, emit func(Combined)) error {
	var (
		res    catalog.Result
		set    favorites.Set
		hasRes bool
		hasSet bool
	)
	for results != nil || sets != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case r, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			res, hasRes = r, true

		case s, ok := <-sets:
			if !ok {
				sets = nil
				continue
			}
			set, hasSet = s, true
		}

		if !hasRes || !hasSet {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		emit(Combine(res, set))
	}
	return nil
}
