package core

import "time"

// RuntimeConfig contains the settings the platform passes to a game session.
type RuntimeConfig struct {
	ScreenW    int           // Screen width in characters
	ScreenH    int           // Screen height in characters
	Seed       int64         // RNG seed for advisor randomness (0 = time based)
	ThinkDelay time.Duration // Pause before a computer move is shown
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		Seed:       0, // 0 means use current time in platform layer
		ThinkDelay: 400 * time.Millisecond,
	}
}
