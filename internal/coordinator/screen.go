package coordinator

import (
	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/engine"
	"github.com/five82/stash/internal/fault"
)

// Phase is the presentation state of the favorites screen.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseNoData
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseSuccess:
		return "success"
	case PhaseNoData:
		return "no_data"
	case PhaseError:
		return "error"
	default:
		return "loading"
	}
}

// Screen is what the favorites screen renders. Items is non-empty only in
// PhaseSuccess; Err is set only in PhaseError.
type Screen struct {
	Phase Phase
	Items []catalog.Item
	Err   error
}

// Reason classifies Err. It is KindGeneric outside PhaseError.
func (s Screen) Reason() fault.Kind {
	if s.Phase != PhaseError {
		return fault.KindGeneric
	}
	return fault.KindOf(s.Err)
}

// ScreenFrom maps an engine emission onto a Screen. The mapping is total: a
// successful but empty view is PhaseNoData.
func ScreenFrom(cb engine.Combined) Screen {
	switch cb.Status {
	case catalog.StatusSuccess:
		if len(cb.Items) == 0 {
			return Screen{Phase: PhaseNoData}
		}
		return Screen{Phase: PhaseSuccess, Items: cb.Items}
	case catalog.StatusError:
		return Screen{Phase: PhaseError, Err: cb.Err}
	default:
		return Screen{Phase: PhaseLoading}
	}
}
