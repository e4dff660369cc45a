// Package connect4 implements the Connect Four board and rules.
// It contains pure game logic with no terminal or storage dependencies; the
// platform layer drives it turn by turn.
package connect4

import (
	"errors"
	"fmt"
	"strings"
)

// Board dimensions and run length needed to win.
const (
	Rows     = 6
	Columns  = 7
	ConnectN = 4
)

// Cell is the occupancy of a single board position.
type Cell uint8

const (
	Empty Cell = iota
	PlayerOne
	PlayerTwo
)

// Player identifies a side. Only PlayerOne and PlayerTwo are meaningful.
type Player = Cell

// Opponent returns the other side.
func Opponent(p Player) Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Symbol returns the disc glyph used when printing boards.
func (c Cell) Symbol() rune {
	switch c {
	case PlayerOne:
		return 'X'
	case PlayerTwo:
		return 'O'
	default:
		return ' '
	}
}

var (
	// ErrInvalidMove is returned for a column that is not a legal move.
	ErrInvalidMove = errors.New("connect4: invalid move")
	// ErrColumnFull is returned when the target column has no empty cell.
	ErrColumnFull = fmt.Errorf("%w: column is full", ErrInvalidMove)
	// ErrGameOver is returned when a move is attempted on a finished game.
	ErrGameOver = errors.New("connect4: game is over")
)

// Board is the 6x7 grid. Row 0 is the top row. Assignment copies the grid.
type Board [Rows][Columns]Cell

// EmptyBoard returns a board with every cell empty.
func EmptyBoard() Board {
	return Board{}
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	return b
}

// LegalMoves returns the columns whose top cell is empty, in ascending order.
// An empty result means the board is full.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// IsLegal reports whether a disc can be dropped into column.
func (b Board) IsLegal(column int) bool {
	return column >= 0 && column < Columns && b[0][column] == Empty
}

// ApplyMove drops p's disc into the lowest empty cell of column, mutating the
// board in place. It returns the row the disc landed in. The board is left
// untouched when the column is out of range or full.
func (b *Board) ApplyMove(column int, p Player) (int, error) {
	if column < 0 || column >= Columns {
		return -1, fmt.Errorf("%w: column %d out of range", ErrInvalidMove, column)
	}

	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			b[row][column] = p
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// After returns a copy of the board with p's disc dropped into column.
// The receiver is not modified.
func (b Board) After(column int, p Player) (Board, error) {
	next := b
	if _, err := next.ApplyMove(column, p); err != nil {
		return b, err
	}
	return next, nil
}

// Count returns the number of discs on the board.
func (b Board) Count() int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// Settled reports whether every column is gravity-filled, with no empty cell
// beneath a disc.
func (b Board) Settled() bool {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := Rows - 1; row >= 0; row-- {
			switch {
			case b[row][col] == Empty:
				seenEmpty = true
			case seenEmpty:
				return false
			}
		}
	}
	return true
}

// String renders the board as plain text with 1-based column numbers.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for col := 1; col <= Columns; col++ {
		fmt.Fprintf(&sb, " %d  ", col)
	}
	sb.WriteString("\n")

	border := "+" + strings.Repeat("---+", Columns) + "\n"
	sb.WriteString(border)
	for row := 0; row < Rows; row++ {
		sb.WriteString("|")
		for col := 0; col < Columns; col++ {
			fmt.Fprintf(&sb, " %c |", b[row][col].Symbol())
		}
		sb.WriteString("\n")
		sb.WriteString(border)
	}
	return sb.String()
}
