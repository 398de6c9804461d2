package coordinator

import (
	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/fault"
)

// Signal is a one-shot event for the presentation layer. It is delivered at
// most once and never replayed.
type Signal interface {
	signal()
}

// SignalNavigate asks the presentation layer to open an item.
type SignalNavigate struct {
	Item catalog.Item
}

// SignalLoadFailed reports that the current subscription reached the error
// state.
type SignalLoadFailed struct {
	Reason fault.Kind
	Err    error
}

// Retryable reports whether a retry action should be offered.
func (s SignalLoadFailed) Retryable() bool { return s.Reason.Retryable() }

// SignalToggleFailed reports a toggle that did not persist. The screen data is
// unchanged.
type SignalToggleFailed struct {
	ID     string
	Reason fault.Kind
	Err    error
}

func (SignalNavigate) signal()     {}
func (SignalLoadFailed) signal()   {}
func (SignalToggleFailed) signal() {}
