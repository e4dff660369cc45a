package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. An empty string means
// "leave the configuration alone" and returns an empty preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// AdvisorForPreset returns the computer advisor ID for a difficulty preset.
func AdvisorForPreset(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy:
		return "simple"
	default:
		return "extended"
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy gets the simple computer and extended hints, hard turns hints off.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Advisor = AdvisorForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.HintAdvisor = "extended"
	case DifficultyNormal:
		cfg.HintAdvisor = "simple"
	case DifficultyHard:
		cfg.HintAdvisor = ""
	}
}
