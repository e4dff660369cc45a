package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
)

var (
	flagPlayerOne  string
	flagPlayerTwo  string
	flagLoad       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Connect Four.

Name a player C to let the computer play that side. When only one
player is named, the computer plays the other. Without names or a
saved game the menu opens.

Controls:
  1-7          - Drop a disc into that column
  Left/Right   - Move the column cursor
  Enter/Space  - Drop into the cursor column
  H            - Hint
  S            - Save the game
  R            - Play again (after game over)
  B/Esc        - Back to the menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Simple computer, extended hints
  normal - Extended computer, simple hints
  hard   - Extended computer, no hints

Examples:
  connect4 play --p1 Ann --p2 Bob
  connect4 play --p1 Ann --p2 C
  connect4 play --p1 C --p2 C --seed 42
  connect4 play --load game.txt
  connect4 play --p1 Ann --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayerOne, "p1", "", "Name of player one (X); C for the computer")
	playCmd.Flags().StringVar(&flagPlayerTwo, "p2", "", "Name of player two (O); C for the computer")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume a saved game")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// participantFor maps a --p1/--p2 value to a participant. An empty name or
// the sentinel selects the computer.
func participantFor(name, sentinel string) connect4.Participant {
	name = strings.TrimSpace(name)
	if name == "" || name == sentinel {
		return connect4.Computer()
	}
	return connect4.Human(name)
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}
	settings := settingsFor(cfg)

	var (
		g      connect4.Game
		notice string
	)
	switch {
	case flagLoad != "":
		loaded, path, loadErr := settings.Codec.Load(flagLoad)
		if loadErr != nil {
			exitf("%v", loadErr)
		}
		g = loaded
		notice = tui.LoadNotice(g, path, logger)

	case flagPlayerOne == "" && flagPlayerTwo == "":
		runMenu(nil, nil)
		return

	default:
		g = connect4.NewGame(
			participantFor(flagPlayerOne, cfg.ComputerSentinel),
			participantFor(flagPlayerTwo, cfg.ComputerSentinel),
		)
	}

	screenLog, closeLog, err := screenLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store := openStore(cfg)
	rc := runtimeConfig(cfg)

	opts, err := settings.GameOptions(seed(), store, screenLog)
	if err != nil {
		exitf("%v", err)
	}
	opts.Notice = notice

	result, runErr := tui.Run(g, opts, rc)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}

	if result.BackToMenu {
		runMenu(nil, nil)
		return
	}
	printOutcome(result.Game)
}

// printOutcome shows how a finished game ended once the screen is gone.
func printOutcome(g connect4.Game) {
	outcome := g.Outcome()
	if outcome.Status == connect4.StatusActive {
		return
	}

	fmt.Print(g.Board.String())
	switch outcome.Status {
	case connect4.StatusDraw:
		fmt.Println("It's a draw")
	case connect4.StatusWon:
		winner := g.Participant(outcome.Winner)
		if winner.IsComputer() {
			fmt.Printf("The Computer (%c) has won!\n", outcome.Winner.Symbol())
		} else {
			fmt.Printf("%s, You won! Congratulations!\n", winner.Name())
		}
	}
}
