package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionDrop           // 1-7 or Enter/Space on the cursor column
	ActionLeft           // Left arrow, a - move the column cursor
	ActionRight          // Right arrow, d - move the column cursor
	ActionSave           // s - save the game to a snapshot file
	ActionHint           // h - ask the hint advisor
	ActionRestart        // r - new game with the same players (after game over)
	ActionBack           // b, Escape - back to the menu
	ActionQuit           // q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionDrop:
		return "Drop"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSave:
		return "Save"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press. Column is the 0-based target of ActionDrop,
// or -1 when the drop should use the cursor column.
type Input struct {
	Action Action
	Column int
}

// NewInput creates an input for an action without a column.
func NewInput(a Action) Input {
	return Input{Action: a, Column: -1}
}

// DropAt creates a drop input for a specific column.
func DropAt(column int) Input {
	return Input{Action: ActionDrop, Column: column}
}

// HasColumn reports whether the input names an explicit column.
func (in Input) HasColumn() bool {
	return in.Action == ActionDrop && in.Column >= 0
}
