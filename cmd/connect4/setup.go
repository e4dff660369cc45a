package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect4/internal/config"
	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/snapshot"
	"github.com/vovakirdan/tui-connect4/internal/platform/tui"
	"github.com/vovakirdan/tui-connect4/internal/registry"
	"github.com/vovakirdan/tui-connect4/internal/storage"
)

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the configuration, applies a difficulty preset and checks
// that the configured advisors exist.
func loadConfig(difficulty string) (config.Config, error) {
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("configuration loaded", "source", cfg.Source)

	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if !registry.Exists(cfg.Advisor) {
		return config.Config{}, fmt.Errorf("unknown advisor %q (run 'connect4 advisors')", cfg.Advisor)
	}
	if cfg.HintsEnabled() && !registry.Exists(cfg.HintAdvisor) {
		return config.Config{}, fmt.Errorf("unknown hint advisor %q (run 'connect4 advisors')", cfg.HintAdvisor)
	}
	return cfg, nil
}

// codecFor builds the snapshot codec described by cfg.
func codecFor(cfg config.Config) snapshot.Codec {
	return snapshot.Codec{
		ComputerSentinel: cfg.ComputerSentinel,
		DefaultName:      cfg.Snapshot.DefaultName,
		Extension:        cfg.Snapshot.Extension,
	}
}

// settingsFor maps the configuration onto the game screens.
func settingsFor(cfg config.Config) tui.Settings {
	return tui.Settings{
		AdvisorID:     cfg.Advisor,
		HintAdvisorID: cfg.HintAdvisor,
		Codec:         codecFor(cfg),
	}
}

// dbPath returns the --db flag, falling back to the configured path.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.DBPath
}

// openStore opens the history database. Games still work without it.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// seed returns the --seed flag, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// runtimeConfig sizes the screens to the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	rc.ThinkDelay = cfg.ThinkDelay()
	return rc
}

// screenLogger returns the logger handed to full-screen views. Those views
// own the terminal, so they only log when --log names a file.
func screenLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open log file: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "connect4",
		Level:           log.DebugLevel,
	})
	return l, func() { f.Close() }, nil
}
