package connect4

import (
	"strconv"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Rendered board size in screen cells: a header line with column numbers,
// then a border line above and below every row.
const (
	BoardWidth  = Columns*4 + 1
	BoardHeight = Rows*2 + 2
)

// RenderOptions controls the decorations drawn around the grid.
type RenderOptions struct {
	Cursor  int        // highlighted column number, -1 for none
	Winning []Position // discs to highlight after a win
}

// DiscColor returns the colour used for a player's discs.
func DiscColor(c Cell) core.Color {
	switch c {
	case PlayerOne:
		return core.ColorRed
	case PlayerTwo:
		return core.ColorYellow
	default:
		return core.ColorDefault
	}
}

// Render draws the board with its top-left corner at (x, y).
func Render(dst *core.Screen, x, y int, b Board, opts RenderOptions) {
	for col := 0; col < Columns; col++ {
		color := core.ColorGray
		if col == opts.Cursor {
			color = core.ColorCyan
		}
		dst.DrawTextColored(x+col*4+2, y, strconv.Itoa(col+1), color)
	}

	winning := make(map[Position]bool, len(opts.Winning))
	for _, p := range opts.Winning {
		winning[p] = true
	}

	for row := 0; row <= Rows; row++ {
		lineY := y + 1 + row*2
		for col := 0; col < Columns; col++ {
			dst.DrawTextColored(x+col*4, lineY, "+---", core.ColorBlue)
		}
		dst.SetColored(x+Columns*4, lineY, '+', core.ColorBlue)
		if row == Rows {
			break
		}

		cellY := lineY + 1
		for col := 0; col <= Columns; col++ {
			dst.SetColored(x+col*4, cellY, '|', core.ColorBlue)
		}
		for col := 0; col < Columns; col++ {
			cell := b[row][col]
			if cell == Empty {
				continue
			}
			color := DiscColor(cell)
			if winning[Position{Row: row, Col: col}] {
				color = core.ColorGreen
			}
			dst.SetColored(x+col*4+2, cellY, cell.Symbol(), color)
		}
	}
}
