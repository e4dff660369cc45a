package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game mode picker menu",
	Long: `Start Connect Four in interactive menu mode.

Pick who plays each side, resume a saved game or browse the history.
After a game you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  connect4 menu
  connect4 menu --difficulty easy
  connect4 menu --db ./history.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}
	settings := settingsFor(cfg)

	screenLog, closeLog, err := screenLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store := openStore(cfg)
	rc := runtimeConfig(cfg)
	menuOpts := settings.MenuOptions(os.Getenv("USER"), screenLog)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(menuOpts, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, historyErr := tui.RunHistory(store, rc.ScreenW, rc.ScreenH)
			if historyErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", historyErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		if menuResult.Game == nil {
			break
		}

		// Fresh advisors for each game
		opts, err := settings.GameOptions(seed(), store, screenLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		opts.Notice = menuResult.Notice

		result, err := tui.Run(*menuResult.Game, opts, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !result.BackToMenu {
			printOutcome(result.Game)
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
