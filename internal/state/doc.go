// Package state provides the latest-value cell shared by producers and the UI.
//
// # Overview
//
// A Cell holds exactly one current value and hands it to any number of
// subscribers. It is the coordination point between goroutines that produce
// updates (the favorites store, the screen coordinator) and the goroutines
// that render them.
//
//	Producer:                        Consumer:
//	┌────────────────┐              ┌──────────────────┐
//	│ cell.Set(v)    │─────────────→│ <-cell.Subscribe │
//	│ cell.Update(fn)│   (mutex)    │ cell.Get()       │
//	└────────────────┘              └──────────────────┘
//
// # Semantics
//
//   - Subscribe replays the current value to the new subscriber, then delivers
//     every later value in the order it was set.
//   - Delivery is conflated. Each subscriber has a one-slot buffer; when a
//     reader falls behind, the pending value is replaced by the newest one.
//     Readers never see values out of order and never block a producer.
//   - Update is an atomic read-modify-write under the cell lock.
//   - Subscriptions end when their context is done; the channel is closed.
//
// # Immutability
//
// The cell copies values by assignment only. Values holding slices or maps must
// be treated as immutable by everyone once they are passed to Set.
//
// # Testing Considerations
//
// The zero Cell is ready to use and reports HasValue=false until the first
// Set. Version increments on every Set, which makes ordering assertions easy.
package state
