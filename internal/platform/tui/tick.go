// Package tui provides the Bubble Tea integration for Connect Four.
// It handles the terminal UI loop, input mapping, computer turns and the
// menu, history and SSH session screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ComputerMoveMsg asks the model to play the computer's move. Turn is the
// move counter at the time the message was scheduled; a message for an
// older turn is stale and ignored.
type ComputerMoveMsg struct {
	Turn int
}

// computerMoveCmd schedules a computer move after delay.
func computerMoveCmd(delay time.Duration, turn int) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return ComputerMoveMsg{Turn: turn} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ComputerMoveMsg{Turn: turn}
	})
}
