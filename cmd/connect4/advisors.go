package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect4/internal/registry"
)

var advisorsCmd = &cobra.Command{
	Use:   "advisors",
	Short: "List all available move advisors",
	Long:  `Shows the move advisors the computer and the hint key can use.`,
	Args:  cobra.NoArgs,
	Run:   runAdvisors,
}

func runAdvisors(_ *cobra.Command, _ []string) {
	advisors := registry.List()

	if len(advisors) == 0 {
		fmt.Println("No advisors available.")
		return
	}

	fmt.Println("Available advisors:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, a := range advisors {
		if len(a.ID) > maxIDLen {
			maxIDLen = len(a.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, a := range advisors {
		fmt.Printf("  %-*s  %s\n", maxIDLen, a.ID, a.Title)
	}

	fmt.Println()
	fmt.Println("Set 'advisor' or 'hint_advisor' in the config to choose one.")
}
