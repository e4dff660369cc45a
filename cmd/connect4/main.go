// connect4 is a Connect Four game for the terminal, with a computer
// opponent, saved games and a result history.
//
// Usage:
//
//	connect4 play             - Play a game (menu when no players are given)
//	connect4 menu             - Pick a game mode interactively
//	connect4 advisors         - List available move advisors
//	connect4 suggest <file>   - Recommend a move for a saved game
//	connect4 history          - Show recent results and player stats
//	connect4 serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path> - Use a custom config file
//	--seed <value>  - Set RNG seed for reproducible computer moves
//	--db <path>     - Set database path (default from config: ~/.connect4/history.db)
//	--log <path>    - Write interactive session logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import advisors to register them
	_ "github.com/vovakirdan/tui-connect4/internal/games/connect4/advisor"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

// logger reports warnings outside the full-screen views.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "connect4",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "connect4",
	Short: "Connect Four - drop discs, line up four",
	Long: `Connect Four for the terminal. Two players take turns dropping discs
into a 7-column, 6-row board; the first to line up four in a row,
column or diagonal wins.

Available commands:
  play      - Play a game directly
  menu      - Interactive game mode picker
  advisors  - Show the computer strategies
  suggest   - Recommend a move for a saved game
  history   - View recent results and player stats
  serve     - Start SSH server for remote play

Examples:
  connect4 play --p1 Ann --p2 C
  connect4 play --load game.txt
  connect4 menu
  connect4 suggest game.txt --advisor simple
  connect4 serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs from interactive screens to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(advisorsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
