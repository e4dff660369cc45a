package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game input.
// Digits 1-7 drop straight into that column; Enter and Space drop into the
// cursor column.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	key := msg.String()

	if len(key) == 1 && key[0] >= '1' && key[0] <= '7' {
		return core.DropAt(int(key[0] - '1'))
	}

	switch key {
	case "ctrl+c", "q", "Q":
		return core.NewInput(core.ActionQuit)
	case "enter", " ", "down":
		return core.NewInput(core.ActionDrop)
	case "left", "a":
		return core.NewInput(core.ActionLeft)
	case "right", "d":
		return core.NewInput(core.ActionRight)
	case "s", "S":
		return core.NewInput(core.ActionSave)
	case "h", "H":
		return core.NewInput(core.ActionHint)
	case "r", "R":
		return core.NewInput(core.ActionRestart)
	case "b", "esc":
		return core.NewInput(core.ActionBack)
	}

	return core.NewInput(core.ActionNone)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
