package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/advisor"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/snapshot"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
}

func twoHumans() connect4.Game {
	return connect4.NewGame(connect4.Human("Ann"), connect4.Human("Bob"))
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

func pressAll(t *testing.T, m GameModel, keys ...string) GameModel {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, runeKey(k))
	}
	return m
}

func TestGameModelTurnsAlternate(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())

	m = pressAll(t, m, "4")
	g := m.Game()
	if g.Board[connect4.Rows-1][3] != connect4.PlayerOne {
		t.Fatalf("bottom of column 4 = %v, want PlayerOne", g.Board[connect4.Rows-1][3])
	}
	if g.Active != connect4.PlayerTwo {
		t.Errorf("Active = %v, want PlayerTwo", g.Active)
	}

	m = pressAll(t, m, "4")
	g = m.Game()
	if g.Board[connect4.Rows-2][3] != connect4.PlayerTwo {
		t.Errorf("second disc in column 4 = %v, want PlayerTwo", g.Board[connect4.Rows-2][3])
	}
	if g.Active != connect4.PlayerOne {
		t.Errorf("Active = %v, want PlayerOne", g.Active)
	}
}

func TestGameModelInvalidMove(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m = pressAll(t, m, "1", "1", "1", "1", "1", "1")

	m = pressAll(t, m, "1")
	if m.Status() != msgInvalidSquare {
		t.Errorf("Status() = %q, want %q", m.Status(), msgInvalidSquare)
	}
	if got := m.Game().Board.Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
	if m.Game().Active != connect4.PlayerOne {
		t.Errorf("Active changed after an invalid move")
	}

	// A valid move clears the message.
	m = pressAll(t, m, "2")
	if m.Status() != "" {
		t.Errorf("Status() = %q after a valid move, want empty", m.Status())
	}
}

func TestGameModelCursorDrop(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Game().Board[connect4.Rows-1][4] != connect4.PlayerOne {
		t.Errorf("Enter after Right should drop into column 5")
	}

	for n := 0; n < 10; n++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Game().Board[connect4.Rows-1][0] != connect4.PlayerTwo {
		t.Errorf("cursor should clamp at column 1")
	}
}

func TestGameModelComputerMove(t *testing.T) {
	g := connect4.NewGame(connect4.Human("Ann"), connect4.Computer())
	m := NewGameModel(g, GameOptions{Advisor: advisor.NewSimple()}, testConfig())

	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should not schedule a move when a human starts")
	}

	m, cmd := update(t, m, runeKey("4"))
	if cmd == nil {
		t.Fatal("human move should schedule the computer")
	}
	msg, ok := cmd().(ComputerMoveMsg)
	if !ok {
		t.Fatalf("cmd() returned %T, want ComputerMoveMsg", cmd())
	}
	if msg.Turn != 1 {
		t.Errorf("ComputerMoveMsg.Turn = %d, want 1", msg.Turn)
	}

	// The human cannot move for the computer.
	m = pressAll(t, m, "5")
	if m.Status() != "Please wait for the computer." {
		t.Errorf("Status() = %q", m.Status())
	}

	m, cmd = update(t, m, msg)
	if cmd != nil {
		t.Error("no further computer move expected")
	}
	g = m.Game()
	if g.Board[connect4.Rows-1][0] != connect4.PlayerTwo {
		t.Errorf("simple advisor should play column 1, board:\n%s", g.Board)
	}
	if g.Active != connect4.PlayerOne {
		t.Errorf("Active = %v, want PlayerOne", g.Active)
	}
	if want := "Computer (O) has selected column 1."; m.Status() != want {
		t.Errorf("Status() = %q, want %q", m.Status(), want)
	}
}

func TestGameModelComputerStarts(t *testing.T) {
	g := connect4.NewGame(connect4.Computer(), connect4.Human("Ann"))
	m := NewGameModel(g, GameOptions{Advisor: advisor.NewSimple()}, testConfig())

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should schedule the computer's first move")
	}
	m, _ = update(t, m, cmd())

	if m.Game().Board.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Game().Board.Count())
	}
	if !strings.Contains(m.turnLine(), "Ann (O)") {
		t.Errorf("turnLine() = %q, want Ann to move", m.turnLine())
	}
}

func TestGameModelIgnoresStaleComputerMove(t *testing.T) {
	g := connect4.NewGame(connect4.Human("Ann"), connect4.Computer())
	m := NewGameModel(g, GameOptions{Advisor: advisor.NewSimple()}, testConfig())

	m, _ = update(t, m, runeKey("4"))
	m, _ = update(t, m, ComputerMoveMsg{Turn: 0})
	if got := m.Game().Board.Count(); got != 1 {
		t.Errorf("stale message played a move: Count() = %d", got)
	}

	m, _ = update(t, m, ComputerMoveMsg{Turn: 1})
	m, _ = update(t, m, ComputerMoveMsg{Turn: 1})
	if got := m.Game().Board.Count(); got != 2 {
		t.Errorf("duplicate message played twice: Count() = %d", got)
	}
}

func TestGameModelWinIsRecordedOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := NewGameModel(twoHumans(), GameOptions{Store: store}, testConfig())
	m = pressAll(t, m, "1", "2", "1", "2", "1", "2", "1")

	if !m.Game().Over() {
		t.Fatal("game should be over")
	}
	if want := "Ann, You won! Congratulations!"; m.turnLine() != want {
		t.Errorf("turnLine() = %q, want %q", m.turnLine(), want)
	}
	if !m.ResultSaved() {
		t.Error("ResultSaved() = false after the game ended")
	}

	// Moves after the end are ignored.
	m = pressAll(t, m, "3", "h")
	if got := m.Game().Board.Count(); got != 7 {
		t.Errorf("Count() = %d after game over, want 7", got)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Winner != storage.WinnerOne || results[0].Moves != 7 {
		t.Errorf("result = %+v", results[0])
	}

	m = pressAll(t, m, "r")
	if m.Game().Over() || m.Game().Board.Count() != 0 {
		t.Error("restart should start an empty game")
	}
	if m.ResultSaved() {
		t.Error("ResultSaved() should reset on restart")
	}
	if m.Game().Players[0].Name() != "Ann" {
		t.Error("restart should keep the participants")
	}
}

func TestGameModelRestartOnlyWhenOver(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m = pressAll(t, m, "4", "r")
	if m.Game().Board.Count() != 1 {
		t.Error("restart during play should be ignored")
	}
}

func TestGameModelComputerWinLine(t *testing.T) {
	g := connect4.NewGame(connect4.Computer(), connect4.Human("Ann"))
	for c := 0; c < 4; c++ {
		g.Board[connect4.Rows-1][c] = connect4.PlayerOne
	}
	g.Board[connect4.Rows-2][0] = connect4.PlayerTwo
	g.Board[connect4.Rows-2][1] = connect4.PlayerTwo
	g.Board[connect4.Rows-2][2] = connect4.PlayerTwo

	m := NewGameModel(g, GameOptions{}, testConfig())
	if want := "The Computer (X) has won!"; m.turnLine() != want {
		t.Errorf("turnLine() = %q, want %q", m.turnLine(), want)
	}
	if m.Init() != nil {
		t.Error("a finished game should not schedule moves")
	}
}

func TestGameModelSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mygame")
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m = pressAll(t, m, "4", "s")

	if !m.Prompting() {
		t.Fatal("S should open the save prompt")
	}

	m, _ = update(t, m, runeKey(path))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Prompting() {
		t.Error("prompt should close after Enter")
	}
	if want := "Game saved to " + path + ".txt."; m.Status() != want {
		t.Errorf("Status() = %q, want %q", m.Status(), want)
	}

	loaded, _, err := snapshot.Load(path + ".txt")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Board != m.Game().Board || loaded.Active != connect4.PlayerTwo {
		t.Errorf("saved game differs:\n%s", loaded.Board)
	}

	// The game carries on after saving.
	m = pressAll(t, m, "4")
	if m.Game().Board.Count() != 2 {
		t.Error("play should continue after saving")
	}
}

func TestGameModelSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "game")
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m = pressAll(t, m, "s")
	m, _ = update(t, m, runeKey(path))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.HasPrefix(m.Status(), msgUnableToSave) {
		t.Errorf("Status() = %q, want prefix %q", m.Status(), msgUnableToSave)
	}
	if m.IsQuitting() {
		t.Error("a failed save should not end the game")
	}
}

func TestGameModelSaveCancel(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m = pressAll(t, m, "s")
	m, _ = update(t, m, runeKey("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.Prompting() {
		t.Error("Esc should close the prompt")
	}
	if m.Game().Board.Count() != 0 {
		t.Error("keys typed into the prompt must not play moves")
	}
}

func TestGameModelNoSave(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{NoSave: true}, testConfig())
	m = pressAll(t, m, "s")

	if m.Prompting() {
		t.Error("save prompt opened with saving turned off")
	}
	if m.Status() != "Saving is turned off." {
		t.Errorf("Status() = %q", m.Status())
	}
	if strings.Contains(m.helpLine(), "Save") {
		t.Errorf("helpLine() = %q, should not offer saving", m.helpLine())
	}
}

func TestGameModelHint(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{Hint: advisor.NewSimple()}, testConfig())
	m = pressAll(t, m, "h")

	if m.Hint() != 0 {
		t.Errorf("Hint() = %d, want 0", m.Hint())
	}
	if m.Status() != "Hint: column 1." {
		t.Errorf("Status() = %q", m.Status())
	}

	m = pressAll(t, m, "4")
	if m.Hint() != -1 {
		t.Errorf("Hint() = %d after a move, want -1", m.Hint())
	}

	off := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	off = pressAll(t, off, "h")
	if off.Status() != "Hints are turned off." {
		t.Errorf("Status() = %q", off.Status())
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m, cmd := update(t, m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("B should request the menu")
	}
	if cmd != nil {
		t.Error("B should not end an embedded game screen")
	}

	m = NewGameModel(twoHumans(), GameOptions{QuitOnBack: true}, testConfig())
	if _, cmd = update(t, m, runeKey("b")); cmd == nil {
		t.Error("B should end a standalone game screen")
	}

	m = NewGameModel(twoHumans(), GameOptions{}, testConfig())
	m, _ = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("Q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(twoHumans(), GameOptions{Notice: "Loaded game.txt."}, testConfig())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"CONNECT FOUR", "X Ann", "O Bob", "Ann (X): Choose a column 1-7", "Loaded game.txt."} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
