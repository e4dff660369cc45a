package connect4

import "fmt"

// ComputerName is the display name of a computer-controlled participant.
const ComputerName = "Computer"

// Participant is either a named human or the computer.
type Participant struct {
	name     string
	computer bool
}

// Human returns a human participant with the given display name.
func Human(name string) Participant {
	return Participant{name: name}
}

// Computer returns a computer-controlled participant.
func Computer() Participant {
	return Participant{computer: true}
}

// IsComputer reports whether the participant is computer-controlled.
func (p Participant) IsComputer() bool {
	return p.computer
}

// Name returns the display name.
func (p Participant) Name() string {
	if p.computer {
		return ComputerName
	}
	return p.name
}

// String implements fmt.Stringer.
func (p Participant) String() string {
	return p.Name()
}

// Game is the full state of a match: who plays each side, whose turn it is
// and the board.
type Game struct {
	Players [2]Participant
	Active  Player
	Board   Board
}

// NewGame starts a game on an empty board with PlayerOne to move.
func NewGame(one, two Participant) Game {
	return Game{
		Players: [2]Participant{one, two},
		Active:  PlayerOne,
		Board:   EmptyBoard(),
	}
}

// Participant returns who controls side p.
func (g Game) Participant(p Player) Participant {
	if p == PlayerTwo {
		return g.Players[1]
	}
	return g.Players[0]
}

// Current returns the participant whose turn it is.
func (g Game) Current() Participant {
	return g.Participant(g.Active)
}

// Outcome evaluates the board.
func (g Game) Outcome() Outcome {
	return g.Board.Outcome()
}

// Over reports whether the game has reached a win or a draw.
func (g Game) Over() bool {
	return g.Outcome().Status != StatusActive
}

// Play drops the active player's disc into column and passes the turn.
// A rejected move changes neither the board nor the turn. The turn is not
// passed once the move ends the game, so Active names the winner.
func (g *Game) Play(column int) error {
	if g.Over() {
		return ErrGameOver
	}
	if !g.Board.IsLegal(column) {
		if column >= 0 && column < Columns {
			return ErrColumnFull
		}
		return fmt.Errorf("%w: column %d out of range", ErrInvalidMove, column)
	}

	if _, err := g.Board.ApplyMove(column, g.Active); err != nil {
		return err
	}

	if !g.Over() {
		g.Active = Opponent(g.Active)
	}
	return nil
}
