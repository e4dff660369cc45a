package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

var (
	flagPlayer string
	flagLimit  int
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent results and player stats",
	Long: `Display recent finished games and the win/loss record of every
player, or of a single player with --player.

Examples:
  connect4 history
  connect4 history --player Ann
  connect4 history --limit 50
  connect4 history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show games of this player")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig("")
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		exitf("opening history database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			exitf("%v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	var results []storage.Result
	if flagPlayer != "" {
		results, err = store.PlayerResults(flagPlayer, flagLimit)
	} else {
		results, err = store.RecentResults(flagLimit)
	}
	if err != nil {
		exitf("retrieving results: %v", err)
	}

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'connect4 play' to record the first result!")
		return
	}

	fmt.Println("Recent games")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %-14s  %-14s  %s\n", "Date", "X", "O", "Winner", "Moves")
	fmt.Printf("  %-16s  %-14s  %-14s  %-14s  %s\n", "----", "-", "-", "------", "-----")
	for _, r := range results {
		fmt.Printf("  %-16s  %-14s  %-14s  %-14s  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player1, r.Player2, r.WinnerName(), r.Moves)
	}
	fmt.Println()

	var stats []storage.PlayerStats
	if flagPlayer != "" {
		s, err := store.PlayerStats(flagPlayer)
		if err != nil {
			exitf("%v", err)
		}
		stats = []storage.PlayerStats{*s}
	} else {
		all, err := store.AllPlayerStats()
		if err != nil {
			exitf("%v", err)
		}
		stats = tui.SortedPlayerStats(all)
	}

	fmt.Println("Players")
	fmt.Println()
	fmt.Printf("  %-14s  %-5s  %-4s  %-4s  %-5s  %s\n", "Player", "Games", "Won", "Lost", "Drawn", "Win %")
	fmt.Printf("  %-14s  %-5s  %-4s  %-4s  %-5s  %s\n", "------", "-----", "---", "----", "-----", "-----")
	for _, s := range stats {
		fmt.Printf("  %-14s  %-5d  %-4d  %-4d  %-5d  %.0f\n",
			s.Player, s.Games, s.Wins, s.Losses, s.Draws, s.WinRate()*100)
	}
}
