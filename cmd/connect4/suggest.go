package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
	"github.com/vovakirdan/tui-connect4/internal/registry"
)

var flagAdvisor string

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Recommend a move for a saved game",
	Long: `Load a saved game, print the board and the column the advisor
recommends for the player to move. Columns are numbered 1-7.

Examples:
  connect4 suggest game.txt
  connect4 suggest game --advisor simple
  connect4 suggest game.txt --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&flagAdvisor, "advisor", "", "Advisor ID (default from config)")
}

func runSuggest(_ *cobra.Command, args []string) {
	cfg, err := loadConfig("")
	if err != nil {
		exitf("%v", err)
	}

	advisorID := cfg.Advisor
	if flagAdvisor != "" {
		advisorID = flagAdvisor
	}
	advisor, err := registry.Create(advisorID, rand.New(rand.NewSource(seed())))
	if err != nil {
		exitf("%v (run 'connect4 advisors')", err)
	}

	g, path, err := codecFor(cfg).Load(args[0])
	if err != nil {
		exitf("%v", err)
	}
	if !g.Board.Settled() {
		logger.Warn("board has floating discs", "file", path)
	}

	fmt.Print(g.Board.String())

	outcome := g.Outcome()
	switch outcome.Status {
	case connect4.StatusWon:
		fmt.Printf("Game over: %s (%c) has won.\n", g.Participant(outcome.Winner).Name(), outcome.Winner.Symbol())
		return
	case connect4.StatusDraw:
		fmt.Println("Game over: it's a draw.")
		return
	}

	column := advisor.RecommendMove(g.Board, g.Active)
	if column < 0 {
		fmt.Println("No legal moves.")
		return
	}
	fmt.Printf("%s (%c) should play column %d (%s).\n",
		g.Current().Name(), g.Active.Symbol(), column+1, advisor.Title())
}
