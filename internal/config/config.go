// Package config provides YAML-based configuration loading and difficulty
// presets for Connect Four.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config contains all configuration for a Connect Four session.
type Config struct {
	Advisor          string         `yaml:"advisor"`           // advisor ID for computer players
	HintAdvisor      string         `yaml:"hint_advisor"`      // advisor ID for hints, empty = off
	ComputerSentinel string         `yaml:"computer_sentinel"` // identifier that marks a computer player
	Snapshot         SnapshotConfig `yaml:"snapshot"`
	Computer         ComputerConfig `yaml:"computer"`
	Storage          StorageConfig  `yaml:"storage"`

	// Source is where the configuration was read from. Not part of the YAML.
	Source string `yaml:"-"`
}

// SnapshotConfig defines saved-game file naming.
type SnapshotConfig struct {
	DefaultName string `yaml:"default_name"`
	Extension   string `yaml:"extension"`
}

// ComputerConfig defines computer player pacing.
type ComputerConfig struct {
	ThinkDelayMS int `yaml:"think_delay_ms"` // pause before a computer move in the TUI
}

// StorageConfig defines the result history database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ThinkDelay returns the computer think delay as a duration.
func (c Config) ThinkDelay() time.Duration {
	return time.Duration(c.Computer.ThinkDelayMS) * time.Millisecond
}

// HintsEnabled reports whether a hint advisor is configured.
func (c Config) HintsEnabled() bool {
	return c.HintAdvisor != ""
}

// Validate checks fields that have no usable zero value. Advisor IDs are
// checked by the caller against the advisor registry.
func (c Config) Validate() error {
	var problems []string

	if c.Advisor == "" {
		problems = append(problems, "advisor is empty")
	}
	if c.ComputerSentinel == "" {
		problems = append(problems, "computer_sentinel is empty")
	}
	if strings.ContainsAny(c.ComputerSentinel, "\r\n") {
		problems = append(problems, "computer_sentinel contains a line break")
	}
	if c.Snapshot.DefaultName == "" {
		problems = append(problems, "snapshot.default_name is empty")
	}
	if c.Snapshot.Extension != "" && !strings.HasPrefix(c.Snapshot.Extension, ".") {
		problems = append(problems, fmt.Sprintf("snapshot.extension %q must start with a dot", c.Snapshot.Extension))
	}
	if c.Computer.ThinkDelayMS < 0 {
		problems = append(problems, "computer.think_delay_ms is negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
