// Package advisor implements the move advisors used for computer players and
// hints. Both advisors are shallow tactical heuristics, not game-tree search:
// they look for wins and blocks one and two plies ahead and otherwise fall
// back to fixed preferences or a random legal move.
package advisor

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/registry"
)

// Registered advisor IDs.
const (
	SimpleID   = "simple"
	ExtendedID = "extended"
)

func init() {
	registry.Register(SimpleID, func(_ *rand.Rand) registry.Advisor {
		return NewSimple()
	})
	registry.Register(ExtendedID, func(rng *rand.Rand) registry.Advisor {
		return NewExtended(rng)
	})
}

// Simple wins when it can, blocks an immediate loss, and otherwise plays the
// lowest legal column.
type Simple struct{}

// NewSimple creates a simple advisor.
func NewSimple() *Simple {
	return &Simple{}
}

// ID returns the advisor identifier.
func (*Simple) ID() string { return SimpleID }

// Title returns the display name.
func (*Simple) Title() string { return "Simple (win, block, first column)" }

// RecommendMove picks a column for p.
func (*Simple) RecommendMove(b connect4.Board, p connect4.Player) int {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1
	}

	if col, ok := winningMove(b, p); ok {
		return col
	}
	if col, ok := winningMove(b, connect4.Opponent(p)); ok {
		return col
	}
	return moves[0]
}

// Extended adds opening preferences and two-ply lookahead to the simple
// checks, and chooses randomly when nothing else applies.
type Extended struct {
	rng *rand.Rand
}

// NewExtended creates an extended advisor drawing random choices from rng.
// A nil rng is replaced by a time-seeded source.
func NewExtended(rng *rand.Rand) *Extended {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Extended{rng: rng}
}

// ID returns the advisor identifier.
func (*Extended) ID() string { return ExtendedID }

// Title returns the display name.
func (*Extended) Title() string { return "Extended (two-ply lookahead)" }

// RecommendMove picks a column for p. The checks run in strict priority
// order and the first one that applies decides the move.
func (a *Extended) RecommendMove(b connect4.Board, p connect4.Player) int {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1
	}
	opponent := connect4.Opponent(p)

	if col, ok := winningMove(b, p); ok {
		return col
	}
	if col, ok := winningMove(b, opponent); ok {
		return col
	}
	if col, ok := openingMove(b, p); ok {
		return col
	}

	if first, second, ok := doubleMoveWin(b, opponent); ok {
		if first != second {
			return second
		}
		// Same-column threats are answered with any other column.
		if others := without(moves, second); len(others) > 0 {
			return a.pick(others)
		}
		return a.pick(moves)
	}

	if _, second, ok := doubleMoveWin(b, p); ok {
		return second
	}

	return a.pick(moves)
}

func (a *Extended) pick(moves []int) int {
	return moves[a.rng.Intn(len(moves))]
}

// winningMove returns the lowest column that wins immediately for p.
func winningMove(b connect4.Board, p connect4.Player) (int, bool) {
	for _, col := range b.LegalMoves() {
		trial, err := b.After(col, p)
		if err != nil {
			continue
		}
		if trial.HasWon(p) {
			return col, true
		}
	}
	return -1, false
}

// openingMove applies the fixed early-game preferences: PlayerOne takes
// column 3 then column 4 while their bottom cell is free, PlayerTwo takes
// column 2 while its bottom cell is free.
func openingMove(b connect4.Board, p connect4.Player) (int, bool) {
	bottom := connect4.Rows - 1
	switch p {
	case connect4.PlayerOne:
		if b[bottom][3] == connect4.Empty {
			return 3, true
		}
		if b[bottom][4] == connect4.Empty {
			return 4, true
		}
	case connect4.PlayerTwo:
		if b[bottom][2] == connect4.Empty {
			return 2, true
		}
	}
	return -1, false
}

// doubleMoveWin searches for two consecutive discs p could drop to win,
// ignoring the other side's reply. Columns are tried in ascending order and
// the first pair found is returned.
func doubleMoveWin(b connect4.Board, p connect4.Player) (int, int, bool) {
	for _, first := range b.LegalMoves() {
		once, err := b.After(first, p)
		if err != nil {
			continue
		}
		for _, second := range once.LegalMoves() {
			twice, err := once.After(second, p)
			if err != nil {
				continue
			}
			if twice.HasWon(p) {
				return first, second, true
			}
		}
	}
	return -1, -1, false
}

func without(moves []int, col int) []int {
	out := make([]int, 0, len(moves))
	for _, m := range moves {
		if m != col {
			out = append(out, m)
		}
	}
	return out
}
