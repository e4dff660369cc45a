package connect4

// Status describes whether a board is still in play.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusDraw   Status = "draw"
)

// Outcome is the terminal-state verdict for a board.
// Winner is Empty unless Status is StatusWon.
type Outcome struct {
	Status Status
	Winner Player
}

// Position addresses a single cell.
type Position struct {
	Row, Col int
}

// Line directions: right, down, down-right, down-left.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasWon reports whether p occupies four adjacent cells in a horizontal,
// vertical or diagonal line. Runs longer than four also count.
func (b Board) HasWon(p Player) bool {
	return b.WinningLine(p) != nil
}

// WinningLine returns the first four-cell line owned by p, scanning rows top
// to bottom and columns left to right, or nil when p has not won.
func (b Board) WinningLine(p Player) []Position {
	if p == Empty {
		return nil
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] != p {
				continue
			}
			for _, d := range directions {
				if b.owns(row, col, d[0], d[1], p) {
					line := make([]Position, ConnectN)
					for i := range line {
						line[i] = Position{Row: row + d[0]*i, Col: col + d[1]*i}
					}
					return line
				}
			}
		}
	}
	return nil
}

// owns checks the ConnectN-cell window starting at (row, col) along (dr, dc).
func (b Board) owns(row, col, dr, dc int, p Player) bool {
	for i := 0; i < ConnectN; i++ {
		r, c := row+dr*i, col+dc*i
		if r < 0 || r >= Rows || c < 0 || c >= Columns || b[r][c] != p {
			return false
		}
	}
	return true
}

// IsFull reports whether no column accepts another disc.
func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[0][col] == Empty {
			return false
		}
	}
	return true
}

// IsDraw reports a full board on which neither player has won.
func (b Board) IsDraw() bool {
	return b.IsFull() && !b.HasWon(PlayerOne) && !b.HasWon(PlayerTwo)
}

// Outcome evaluates the board. A win is checked before a draw.
func (b Board) Outcome() Outcome {
	for _, p := range [2]Player{PlayerOne, PlayerTwo} {
		if b.HasWon(p) {
			return Outcome{Status: StatusWon, Winner: p}
		}
	}
	if b.IsFull() {
		return Outcome{Status: StatusDraw}
	}
	return Outcome{Status: StatusActive}
}
