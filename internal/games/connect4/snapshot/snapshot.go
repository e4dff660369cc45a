// Package snapshot reads and writes saved Connect Four games.
//
// A snapshot is a plain text file of nine lines:
//
//	player one identifier
//	player two identifier
//	active player, "1" or "2"
//	six board rows, top row first, each seven comma-separated digits
//	(0 = empty, 1 = player one, 2 = player two)
//
// A computer-controlled participant is stored as the computer sentinel
// identifier ("C" by default).
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
)

// Snapshot file defaults.
const (
	DefaultName      = "game.txt"
	DefaultExtension = ".txt"
	DefaultSentinel  = "C"
)

const headerLines = 3

var (
	// ErrMalformedSnapshot is returned when a snapshot does not have the expected shape.
	ErrMalformedSnapshot = errors.New("snapshot: malformed snapshot")
	// ErrSnapshotIO is returned when a snapshot file cannot be read or written.
	ErrSnapshotIO = errors.New("snapshot: i/o failure")
)

// Codec encodes and decodes snapshots and resolves snapshot file names.
type Codec struct {
	// ComputerSentinel is the identifier that marks a computer participant.
	ComputerSentinel string
	// DefaultName is used when no file name is given.
	DefaultName string
	// Extension is appended to names that do not already end with it.
	Extension string
}

// DefaultCodec uses the standard sentinel, file name and extension.
var DefaultCodec = Codec{
	ComputerSentinel: DefaultSentinel,
	DefaultName:      DefaultName,
	Extension:        DefaultExtension,
}

// Encode writes g using DefaultCodec.
func Encode(w io.Writer, g connect4.Game) error { return DefaultCodec.Encode(w, g) }

// Decode reads a game using DefaultCodec.
func Decode(r io.Reader) (connect4.Game, error) { return DefaultCodec.Decode(r) }

// Save writes g to path using DefaultCodec.
func Save(path string, g connect4.Game) (string, error) { return DefaultCodec.Save(path, g) }

// Load reads a game from path using DefaultCodec.
func Load(path string) (connect4.Game, string, error) { return DefaultCodec.Load(path) }

// Encode writes the nine snapshot lines for g.
func (c Codec) Encode(w io.Writer, g connect4.Game) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, c.identifier(g.Players[0]))
	fmt.Fprintln(bw, c.identifier(g.Players[1]))
	fmt.Fprintln(bw, int(g.Active))

	for row := 0; row < connect4.Rows; row++ {
		values := make([]string, connect4.Columns)
		for col := 0; col < connect4.Columns; col++ {
			values[col] = fmt.Sprint(int(g.Board[row][col]))
		}
		fmt.Fprintln(bw, strings.Join(values, ","))
	}

	return bw.Flush()
}

// Decode parses a snapshot. Lines after the board are ignored. The board is
// not checked for floating discs. No partial game is returned on error.
func (c Codec) Decode(r io.Reader) (connect4.Game, error) {
	lines, err := readLines(r, headerLines+connect4.Rows)
	if err != nil {
		return connect4.Game{}, fmt.Errorf("%w: %w", ErrSnapshotIO, err)
	}
	if len(lines) < headerLines+connect4.Rows {
		return connect4.Game{}, fmt.Errorf("%w: expected %d lines, got %d",
			ErrMalformedSnapshot, headerLines+connect4.Rows, len(lines))
	}

	var g connect4.Game
	g.Players[0] = c.participant(lines[0])
	g.Players[1] = c.participant(lines[1])

	switch strings.TrimSpace(lines[2]) {
	case "1":
		g.Active = connect4.PlayerOne
	case "2":
		g.Active = connect4.PlayerTwo
	default:
		return connect4.Game{}, fmt.Errorf("%w: line 3: active player %q is not 1 or 2",
			ErrMalformedSnapshot, lines[2])
	}

	for row := 0; row < connect4.Rows; row++ {
		lineNo := headerLines + row + 1
		cells, err := parseRow(lines[headerLines+row])
		if err != nil {
			return connect4.Game{}, fmt.Errorf("%w: line %d: %w", ErrMalformedSnapshot, lineNo, err)
		}
		g.Board[row] = cells
	}

	return g, nil
}

// Save writes g to the resolved file name and returns that name.
func (c Codec) Save(path string, g connect4.Game) (string, error) {
	name := c.ResolveName(path)

	f, err := os.Create(name)
	if err != nil {
		return name, fmt.Errorf("%w: cannot create %s: %w", ErrSnapshotIO, name, err)
	}

	if err := c.Encode(f, g); err != nil {
		f.Close()
		return name, fmt.Errorf("%w: cannot write %s: %w", ErrSnapshotIO, name, err)
	}
	if err := f.Close(); err != nil {
		return name, fmt.Errorf("%w: cannot close %s: %w", ErrSnapshotIO, name, err)
	}

	return name, nil
}

// Load reads the game stored at the resolved file name and returns it with that name.
func (c Codec) Load(path string) (connect4.Game, string, error) {
	name := c.ResolveName(path)

	f, err := os.Open(name)
	if err != nil {
		return connect4.Game{}, name, fmt.Errorf("%w: cannot open %s: %w", ErrSnapshotIO, name, err)
	}
	defer f.Close()

	g, err := c.Decode(f)
	if err != nil {
		return connect4.Game{}, name, err
	}
	return g, name, nil
}

// ResolveName applies the default file name and extension rules.
func (c Codec) ResolveName(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = c.DefaultName
	}
	if c.Extension != "" && !strings.HasSuffix(path, c.Extension) {
		path += c.Extension
	}
	return path
}

func (c Codec) identifier(p connect4.Participant) string {
	if p.IsComputer() {
		return c.ComputerSentinel
	}
	// Names are single records; a line break would shift every later field.
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(p.Name())
}

func (c Codec) participant(id string) connect4.Participant {
	if id == c.ComputerSentinel {
		return connect4.Computer()
	}
	return connect4.Human(id)
}

// parseRow parses exactly seven comma-separated values in {0,1,2}.
func parseRow(line string) ([connect4.Columns]connect4.Cell, error) {
	var cells [connect4.Columns]connect4.Cell

	tokens := strings.Split(line, ",")
	if len(tokens) != connect4.Columns {
		return cells, fmt.Errorf("expected %d values, got %d", connect4.Columns, len(tokens))
	}

	for i, tok := range tokens {
		switch strings.TrimSpace(tok) {
		case "0":
			cells[i] = connect4.Empty
		case "1":
			cells[i] = connect4.PlayerOne
		case "2":
			cells[i] = connect4.PlayerTwo
		default:
			return cells, fmt.Errorf("value %d is %q, want 0, 1 or 2", i+1, tok)
		}
	}
	return cells, nil
}

// readLines reads up to limit lines with line endings removed.
func readLines(r io.Reader, limit int) ([]string, error) {
	lines := make([]string, 0, limit)
	sc := bufio.NewScanner(r)
	for len(lines) < limit && sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
