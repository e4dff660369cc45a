package tui

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4/snapshot"
	"github.com/vovakirdan/tui-connect4/internal/registry"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// Settings holds the game choices taken from configuration.
type Settings struct {
	AdvisorID     string         // advisor for computer participants
	HintAdvisorID string         // advisor for hints, empty = off
	Codec         snapshot.Codec // snapshot naming and computer sentinel
	NoFiles       bool           // disables saving and loading snapshots
}

// GameOptions creates fresh advisors seeded from seed and bundles them with
// the shared collaborators.
func (s Settings) GameOptions(seed int64, store *storage.Store, logger *log.Logger) (GameOptions, error) {
	rng := rand.New(rand.NewSource(seed))

	computer, err := registry.Create(s.AdvisorID, rng)
	if err != nil {
		return GameOptions{}, fmt.Errorf("computer advisor: %w", err)
	}

	opts := GameOptions{
		Advisor: computer,
		Store:   store,
		Logger:  logger,
		NoSave:  s.NoFiles,
	}
	if !s.NoFiles {
		codec := s.Codec
		opts.Codec = &codec
	}

	if s.HintAdvisorID != "" {
		// Separate source: hints never shift the computer's random choices.
		hint, err := registry.Create(s.HintAdvisorID, rand.New(rand.NewSource(seed+1)))
		if err != nil {
			return GameOptions{}, fmt.Errorf("hint advisor: %w", err)
		}
		opts.Hint = hint
	}

	return opts, nil
}

// MenuOptions bundles the menu collaborators for these settings.
func (s Settings) MenuOptions(defaultName string, logger *log.Logger) MenuOptions {
	codec := s.Codec
	return MenuOptions{
		Codec:       &codec,
		DefaultName: defaultName,
		Logger:      logger,
		NoLoad:      s.NoFiles,
	}
}
