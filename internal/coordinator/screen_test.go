package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/engine"
	"github.com/five82/stash/internal/fault"
)

func TestScreenFrom(t *testing.T) {
	boom := fault.New(fault.KindNetworkOther, "fetch catalog", errors.New("refused"))
	items := []catalog.Item{{ID: "a"}}

	tests := []struct {
		name string
		in   engine.Combined
		want Phase
	}{
		{"loading", engine.Combined{Status: catalog.StatusLoading}, PhaseLoading},
		{"success", engine.Combined{Status: catalog.StatusSuccess, Items: items}, PhaseSuccess},
		{"empty success", engine.Combined{Status: catalog.StatusSuccess}, PhaseNoData},
		{"error", engine.Combined{Status: catalog.StatusError, Err: boom}, PhaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScreenFrom(tt.in).Phase)
		})
	}

	s := ScreenFrom(engine.Combined{Status: catalog.StatusError, Err: boom})
	assert.Equal(t, fault.KindNetworkOther, s.Reason())
	assert.Equal(t, fault.KindGeneric, Screen{Phase: PhaseSuccess}.Reason())
}
