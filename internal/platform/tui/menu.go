package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/snapshot"
)

// MenuChoice identifies a menu entry.
type MenuChoice int

const (
	ChoiceHumanVsHuman MenuChoice = iota
	ChoiceHumanVsComputer
	ChoiceComputerVsHuman
	ChoiceComputerVsComputer
	ChoiceLoad
	ChoiceHistory
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// menuItems are the entries in display order.
var menuItems = []MenuItem{
	{ChoiceHumanVsHuman, "Human vs Human"},
	{ChoiceHumanVsComputer, "Human vs Computer"},
	{ChoiceComputerVsHuman, "Computer vs Human"},
	{ChoiceComputerVsComputer, "Computer vs Computer"},
	{ChoiceLoad, "Load saved game"},
	{ChoiceHistory, "History"},
	{ChoiceQuit, "Quit"},
}

// Seats returns which seats are human for a play choice.
func (c MenuChoice) Seats() (oneHuman, twoHuman bool) {
	switch c {
	case ChoiceHumanVsHuman:
		return true, true
	case ChoiceHumanVsComputer:
		return true, false
	case ChoiceComputerVsHuman:
		return false, true
	default:
		return false, false
	}
}

type menuStage int

const (
	stageChoose menuStage = iota
	stageNames
	stageLoad
)

var namePrompts = [2]string{"1st Player's name: ", "2nd Player's name: "}

// MenuOptions carries the collaborators of the menu. Every field is optional.
type MenuOptions struct {
	Codec       *snapshot.Codec // loads saved games; snapshot.DefaultCodec when nil
	DefaultName string          // suggested name for the first human
	Logger      *log.Logger
	NoLoad      bool // hides the load entry
}

// MenuModel is the Bubble Tea model for picking a game mode.
type MenuModel struct {
	opts      MenuOptions
	codec     snapshot.Codec
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	input     textinput.Model
	stage     menuStage
	choice    MenuChoice
	seat      int // seat whose name is being entered
	players   [2]connect4.Participant
	message   string

	selected     *connect4.Game // Set when a game is ready to play
	notice       string
	wantsHistory bool
	quitting     bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts MenuOptions, cfg core.RuntimeConfig) MenuModel {
	codec := snapshot.DefaultCodec
	if opts.Codec != nil {
		codec = *opts.Codec
	}

	items := make([]MenuItem, 0, len(menuItems))
	for _, item := range menuItems {
		if item.Choice == ChoiceLoad && opts.NoLoad {
			continue
		}
		items = append(items, item)
	}

	ti := textinput.New()
	ti.CharLimit = 64

	return MenuModel{
		opts:      opts,
		codec:     codec,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     ti,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.stage == stageChoose {
			return m.handleKey(msg)
		}
		return m.handleInputKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose(m.items[m.cursor].Choice)
	}

	return m, nil
}

// choose acts on a selected entry.
func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	m.message = ""

	switch c {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceHistory:
		m.wantsHistory = true
		return m, tea.Quit

	case ChoiceLoad:
		m.stage = stageLoad
		m.input.Prompt = "File to load: "
		m.input.Placeholder = m.codec.ResolveName("")
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	}

	m.players = [2]connect4.Participant{connect4.Computer(), connect4.Computer()}
	m.seat = -1
	return m.nextSeat()
}

// nextSeat opens the name prompt for the next human seat, or starts the game.
func (m MenuModel) nextSeat() (tea.Model, tea.Cmd) {
	oneHuman, twoHuman := m.choice.Seats()
	human := [2]bool{oneHuman, twoHuman}

	for m.seat++; m.seat < 2; m.seat++ {
		if !human[m.seat] {
			continue
		}
		m.stage = stageNames
		m.input.Prompt = namePrompts[m.seat]
		m.input.Placeholder = m.defaultName(m.seat)
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	}

	g := connect4.NewGame(m.players[0], m.players[1])
	m.selected = &g
	m.stage = stageChoose
	m.input.Blur()
	return m, tea.Quit
}

func (m MenuModel) defaultName(seat int) string {
	if seat == 0 && m.opts.DefaultName != "" {
		return m.opts.DefaultName
	}
	return fmt.Sprintf("Player %d", seat+1)
}

// handleInputKey feeds the name and file prompts.
func (m MenuModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		m.stage = stageChoose
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if m.stage == stageLoad {
			return m.load(value)
		}
		if value == "" {
			value = m.input.Placeholder
		}
		m.players[m.seat] = m.participantFor(value)
		return m.nextSeat()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// participantFor maps a typed name to a participant; the computer sentinel
// hands the seat to the computer.
func (m MenuModel) participantFor(name string) connect4.Participant {
	if name == m.codec.ComputerSentinel {
		return connect4.Computer()
	}
	return connect4.Human(name)
}

// load reads a snapshot and selects it.
func (m MenuModel) load(name string) (tea.Model, tea.Cmd) {
	g, path, err := m.codec.Load(name)
	if err != nil {
		m.stage = stageChoose
		m.input.Blur()
		m.message = fmt.Sprintf("Could not load %s: %v", path, err)
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("could not load game", "file", path, "error", err)
		}
		return m, nil
	}

	m.notice = LoadNotice(g, path, m.opts.Logger)
	m.selected = &g
	m.input.Blur()
	return m, tea.Quit
}

// LoadNotice describes a loaded game for the status line. A board with
// floating discs is reported but still played.
func LoadNotice(g connect4.Game, path string, logger *log.Logger) string {
	if !g.Board.Settled() {
		if logger != nil {
			logger.Warn("loaded board has floating discs", "file", path)
		}
		return fmt.Sprintf("Loaded %s (warning: board has floating discs).", path)
	}
	return fmt.Sprintf("Loaded %s.", path)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("WELCOME TO CONNECT FOUR!"), m.width))
	b.WriteString("\n\n")

	switch m.stage {
	case stageChoose:
		b.WriteString(centerText("Select a game", m.width))
		b.WriteString("\n\n")

		selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
		for i, item := range m.items {
			line := "  " + item.Title
			if i == m.cursor {
				line = selectedStyle.Render("> " + item.Title)
			}
			b.WriteString(centerText(fmt.Sprintf("%-24s", line), m.width))
			b.WriteString("\n")
		}

		if m.message != "" {
			b.WriteString("\n")
			errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
			b.WriteString(centerText(errStyle.Render(m.message), m.width))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
		b.WriteString(centerText(controls, m.width))

	default:
		if m.stage == stageNames {
			hint := fmt.Sprintf("Type %q to let the computer play this seat.", m.codec.ComputerSentinel)
			b.WriteString(centerText(hint, m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(centerText(m.input.View(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Confirm  |  Esc: Back", m.width))
	}
	b.WriteString("\n")

	return b.String()
}

// Selected returns the game to play, or nil if none was chosen.
func (m MenuModel) Selected() *connect4.Game {
	return m.selected
}

// Notice returns the status message for the selected game.
func (m MenuModel) Notice() string {
	return m.notice
}

// Message returns the last menu error, such as a failed load.
func (m MenuModel) Message() string {
	return m.message
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.wantsHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Game         *connect4.Game
	Notice       string
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(opts MenuOptions, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.Selected() != nil:
		result.Game = m.Selected()
		result.Notice = m.Notice()
	default:
		result.Quit = true
	}

	return result, nil
}
