package tui

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/advisor"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/snapshot"
	"github.com/vovakirdan/tui-connect4/internal/registry"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// Status messages shown below the board.
const (
	msgInvalidSquare = "Sorry, invalid square. Please try again!"
	msgDraw          = "It's a draw"
	msgUnableToSave  = "Unable to save"
	msgSavePrompt    = "What would you like the file name to be? : "
)

// Frame layout around the board.
const (
	framePadX = 3
	frameW    = connect4.BoardWidth + 2*framePadX
	frameH    = connect4.BoardHeight + 6
	boardTop  = 4
)

// GameOptions carries the collaborators of a game screen. Every field is optional.
type GameOptions struct {
	Advisor registry.Advisor // plays for computer participants; extended when nil
	Hint    registry.Advisor // answers the hint key; hints are off when nil
	Store   *storage.Store   // receives finished games
	Codec   *snapshot.Codec  // saves games; snapshot.DefaultCodec when nil
	Logger  *log.Logger
	Notice  string // initial status line, e.g. where the game was loaded from
	NoSave  bool   // disables the save key

	// QuitOnBack ends the program on the back key instead of only flagging it.
	// Set it when the game screen runs as its own program.
	QuitOnBack bool
}

// GameModel is the Bubble Tea model for one Connect Four game.
type GameModel struct {
	game      connect4.Game
	opts      GameOptions
	codec     snapshot.Codec
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	prompt    textinput.Model

	cursor      int
	hint        int // hinted column, -1 when none
	turn        int // bumped on every move and restart
	status      string
	prompting   bool
	resultSaved bool
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a model for g, which may be fresh or loaded from a snapshot.
func NewGameModel(g connect4.Game, opts GameOptions, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Advisor == nil {
		opts.Advisor = advisor.NewExtended(rand.New(rand.NewSource(cfg.Seed)))
	}

	codec := snapshot.DefaultCodec
	if opts.Codec != nil {
		codec = *opts.Codec
	}

	ti := textinput.New()
	ti.Prompt = msgSavePrompt
	ti.Placeholder = codec.ResolveName("")
	ti.CharLimit = 128

	return GameModel{
		game:      g,
		opts:      opts,
		codec:     codec,
		screen:    core.NewScreen(core.Max(cfg.ScreenW, frameW), frameH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		prompt:    ti,
		cursor:    connect4.Columns / 2,
		hint:      -1,
		status:    opts.Notice,
	}
}

// Init schedules the first computer move when a computer starts.
func (m GameModel) Init() tea.Cmd {
	return m.nextTurnCmd()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(core.Max(msg.Width, frameW), frameH)
		return m, nil

	case ComputerMoveMsg:
		return m.handleComputerMove(msg)
	}

	return m, nil
}

// handleKey processes keyboard input outside the save prompt.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.backToMenu = true
		if m.opts.QuitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionLeft:
		m.cursor = core.Clamp(m.cursor-1, 0, connect4.Columns-1)

	case core.ActionRight:
		m.cursor = core.Clamp(m.cursor+1, 0, connect4.Columns-1)

	case core.ActionDrop:
		column := m.cursor
		if in.HasColumn() {
			column = in.Column
		}
		return m.playHuman(column)

	case core.ActionSave:
		if m.opts.NoSave {
			m.status = "Saving is turned off."
			return m, nil
		}
		m.prompting = true
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd

	case core.ActionHint:
		m.showHint()

	case core.ActionRestart:
		if m.game.Over() {
			return m.restart()
		}
	}

	return m, nil
}

// playHuman drops the active human's disc into column.
func (m GameModel) playHuman(column int) (tea.Model, tea.Cmd) {
	if m.game.Over() {
		return m, nil
	}
	if m.game.Current().IsComputer() {
		m.status = "Please wait for the computer."
		return m, nil
	}

	if err := m.game.Play(column); err != nil {
		m.status = msgInvalidSquare
		if !errors.Is(err, connect4.ErrInvalidMove) && m.opts.Logger != nil {
			m.opts.Logger.Warn("move rejected", "column", column+1, "error", err)
		}
		return m, nil
	}

	m.cursor = column
	m.status = ""
	return m.afterMove()
}

// handleComputerMove plays for the computer when msg is for the current turn.
func (m GameModel) handleComputerMove(msg ComputerMoveMsg) (tea.Model, tea.Cmd) {
	if msg.Turn != m.turn || m.game.Over() || !m.game.Current().IsComputer() {
		return m, nil
	}

	active := m.game.Active
	column := m.opts.Advisor.RecommendMove(m.game.Board, active)
	if err := m.game.Play(column); err != nil {
		// Advisors only return legal columns while the game is active.
		m.status = fmt.Sprintf("Computer could not move: %v", err)
		if m.opts.Logger != nil {
			m.opts.Logger.Error("advisor returned an illegal move",
				"advisor", m.opts.Advisor.ID(), "column", column, "error", err)
		}
		return m, nil
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("computer move", "advisor", m.opts.Advisor.ID(), "column", column+1)
	}

	m.cursor = column
	m.status = fmt.Sprintf("Computer (%c) has selected column %d.", active.Symbol(), column+1)
	return m.afterMove()
}

// afterMove records a finished game or hands the turn on.
func (m GameModel) afterMove() (tea.Model, tea.Cmd) {
	m.turn++
	m.hint = -1

	if m.game.Over() {
		m.recordResult()
		return m, nil
	}
	return m, m.nextTurnCmd()
}

// nextTurnCmd schedules the computer's move if the computer is to play.
func (m GameModel) nextTurnCmd() tea.Cmd {
	if m.game.Over() || !m.game.Current().IsComputer() {
		return nil
	}
	return computerMoveCmd(m.config.ThinkDelay, m.turn)
}

// recordResult stores the finished game once.
func (m *GameModel) recordResult() {
	if m.resultSaved {
		return
	}
	m.resultSaved = true

	result, ok := storage.ResultFromGame(m.game)
	if !ok {
		return
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Info("game finished",
			"player1", result.Player1, "player2", result.Player2,
			"winner", result.WinnerName(), "moves", result.Moves)
	}
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveResult(result); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save result", "error", err)
	}
}

// restart starts a new game with the same participants.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.game = connect4.NewGame(m.game.Players[0], m.game.Players[1])
	m.turn++
	m.hint = -1
	m.cursor = connect4.Columns / 2
	m.status = ""
	m.resultSaved = false
	return m, m.nextTurnCmd()
}

// showHint asks the hint advisor for the active player's move.
func (m *GameModel) showHint() {
	if m.game.Over() {
		return
	}
	if m.opts.Hint == nil {
		m.status = "Hints are turned off."
		return
	}

	column := m.opts.Hint.RecommendMove(m.game.Board, m.game.Active)
	if column < 0 {
		return
	}
	m.hint = column
	m.cursor = column
	m.status = fmt.Sprintf("Hint: column %d.", column+1)
}

// handlePromptKey feeds the save prompt.
func (m GameModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		m.save(m.prompt.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// save writes a snapshot. Failures are reported and the game continues.
func (m *GameModel) save(name string) {
	path, err := m.codec.Save(name, m.game)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", msgUnableToSave, err)
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save game", "file", path, "error", err)
		}
		return
	}
	m.status = fmt.Sprintf("Game saved to %s.", path)
}

// turnLine describes whose move it is or how the game ended.
func (m GameModel) turnLine() string {
	outcome := m.game.Outcome()
	switch outcome.Status {
	case connect4.StatusDraw:
		return msgDraw
	case connect4.StatusWon:
		winner := m.game.Participant(outcome.Winner)
		if winner.IsComputer() {
			return fmt.Sprintf("The Computer (%c) has won!", outcome.Winner.Symbol())
		}
		return fmt.Sprintf("%s, You won! Congratulations!", winner.Name())
	}

	current := m.game.Current()
	if current.IsComputer() {
		return fmt.Sprintf("Computer (%c) is thinking...", m.game.Active.Symbol())
	}
	return fmt.Sprintf("%s (%c): Choose a column 1-%d", current.Name(), m.game.Active.Symbol(), connect4.Columns)
}

func (m GameModel) helpLine() string {
	if m.prompting {
		return "Enter: save  |  Esc: cancel"
	}
	if m.game.Over() {
		return "R: Play again  |  S: Save  |  B: Menu  |  Q: Quit"
	}
	if m.opts.NoSave {
		return "1-7/Enter: Drop  |  Left/Right: Move  |  H: Hint  |  B: Menu  |  Q: Quit"
	}
	return "1-7/Enter: Drop  |  Left/Right: Move  |  H: Hint  |  S: Save  |  B: Menu  |  Q: Quit"
}

// View renders the board and the status lines.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.screen
	s.Clear()

	frame := core.NewRect(0, 0, s.Width(), s.Height()).Centered(frameW, frameH)
	s.DrawBox(frame, core.ColorGray)
	s.DrawTextCentered(frame.Y+1, "CONNECT FOUR", core.ColorBrightWhite)

	one := fmt.Sprintf("X %s", m.game.Players[0].Name())
	two := fmt.Sprintf("O %s", m.game.Players[1].Name())
	players := one + "  vs  " + two
	px := frame.X + core.Max(1, (frameW-len([]rune(players)))/2)
	s.DrawTextColored(px, frame.Y+2, one, connect4.DiscColor(connect4.PlayerOne))
	s.DrawText(px+len([]rune(one)), frame.Y+2, "  vs  ")
	s.DrawTextColored(px+len([]rune(one))+6, frame.Y+2, two, connect4.DiscColor(connect4.PlayerTwo))

	opts := connect4.RenderOptions{Cursor: -1}
	if !m.game.Over() && !m.game.Current().IsComputer() {
		opts.Cursor = m.cursor
	}
	if outcome := m.game.Outcome(); outcome.Status == connect4.StatusWon {
		opts.Winning = m.game.Board.WinningLine(outcome.Winner)
	}
	connect4.Render(s, frame.X+framePadX, frame.Y+boardTop-1, m.game.Board, opts)

	width := s.Width()
	var b strings.Builder
	b.WriteString(RenderScreen(s))
	b.WriteString("\n")
	b.WriteString(centerText(m.turnLine(), width))
	b.WriteString("\n")
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(statusStyle.Render(m.status), width))
	b.WriteString("\n")
	if m.prompting {
		b.WriteString(centerText(m.prompt.View(), width))
	} else {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		b.WriteString(centerText(helpStyle.Render(m.helpLine()), width))
	}

	return b.String()
}

// Game returns the current game state.
func (m GameModel) Game() connect4.Game {
	return m.game
}

// Status returns the current status line.
func (m GameModel) Status() string {
	return m.status
}

// Hint returns the hinted column, or -1.
func (m GameModel) Hint() int {
	return m.hint
}

// Prompting reports whether the save prompt is open.
func (m GameModel) Prompting() bool {
	return m.prompting
}

// ResultSaved reports whether the finished game has been recorded.
func (m GameModel) ResultSaved() bool {
	return m.resultSaved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// GameResult holds the outcome of running a game screen.
type GameResult struct {
	Game       connect4.Game
	BackToMenu bool
}

// Run starts a Bubble Tea program for a single game.
func Run(g connect4.Game, opts GameOptions, cfg core.RuntimeConfig) (GameResult, error) {
	opts.QuitOnBack = true
	model := NewGameModel(g, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{Game: g}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{Game: g}, nil
	}
	return GameResult{Game: m.Game(), BackToMenu: m.BackToMenu()}, nil
}
