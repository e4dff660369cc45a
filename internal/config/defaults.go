package config

import (
	_ "embed"
)

//go:embed defaults/connect4.yaml
var defaultYAML []byte

// SourceEmbedded and SourceBuiltin name the fallback configuration sources.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// DefaultConfig returns the default Connect Four configuration.
func DefaultConfig() Config {
	return Config{
		Advisor:          "extended",
		HintAdvisor:      "simple",
		ComputerSentinel: "C",
		Snapshot: SnapshotConfig{
			DefaultName: "game.txt",
			Extension:   ".txt",
		},
		Computer: ComputerConfig{
			ThinkDelayMS: 400,
		},
		Storage: StorageConfig{
			DBPath: "~/.connect4/history.db",
		},
		Source: SourceBuiltin,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
