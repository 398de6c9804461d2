package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stash/internal/coordinator"
	"github.com/five82/stash/internal/logging"
)

const (
	toastTTL     = 4 * time.Second
	logTailLines = 200
)

// stateMsg carries a Screen from the coordinator.
type stateMsg coordinator.Screen

// signalMsg carries a one-shot coordinator event.
type signalMsg struct {
	signal coordinator.Signal
}

// dismissToastMsg clears the toast with the matching id.
type dismissToastMsg struct {
	id int
}

// dwellDoneMsg releases a Screen held back by the loading dwell.
type dwellDoneMsg struct {
	seq int
}

// logTailMsg carries the last lines of the log file.
type logTailMsg struct {
	lines []string
	err   error
}

func waitState(ch <-chan coordinator.Screen) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func waitSignal(ch <-chan coordinator.Signal) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return signalMsg{signal: s}
	}
}

func loadCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Load()
		return nil
	}
}

func toggleCmd(ctrl Controller, id string) tea.Cmd {
	return func() tea.Msg {
		ctrl.ToggleFavorite(id)
		return nil
	}
}

func randomCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.OpenRandom()
		return nil
	}
}

func dismissToastAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return dismissToastMsg{id: id} })
}

func dwellAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return dwellDoneMsg{seq: seq} })
}

func tailLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logging.Tail(path, logTailLines)
		return logTailMsg{lines: lines, err: err}
	}
}
