package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "advisor: simple\ncomputer:\n  think_delay_ms: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Advisor != "simple" {
		t.Errorf("Advisor = %q, want simple", cfg.Advisor)
	}
	if cfg.ThinkDelay() != 0 {
		t.Errorf("ThinkDelay() = %v, want 0", cfg.ThinkDelay())
	}
	if cfg.ComputerSentinel != "C" {
		t.Errorf("missing fields should keep defaults, got sentinel %q", cfg.ComputerSentinel)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not-exist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "advisor: [unterminated\n")
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad yaml) should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != SourceEmbedded {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceEmbedded)
	}

	userPath := filepath.Join(home, ".connect4", "configs", FileName)
	writeFile(t, userPath, "hint_advisor: extended\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != userPath {
		t.Errorf("Source = %q, want %q", cfg.Source, userPath)
	}
	if cfg.HintAdvisor != "extended" {
		t.Errorf("HintAdvisor = %q, want extended", cfg.HintAdvisor)
	}

	// An unreadable user file falls through to the embedded default.
	writeFile(t, userPath, "snapshot: [\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != SourceEmbedded {
		t.Errorf("Source = %q, want %q", cfg.Source, SourceEmbedded)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty advisor", func(c *Config) { c.Advisor = "" }},
		{"empty sentinel", func(c *Config) { c.ComputerSentinel = "" }},
		{"sentinel with newline", func(c *Config) { c.ComputerSentinel = "C\n" }},
		{"empty default name", func(c *Config) { c.Snapshot.DefaultName = "" }},
		{"extension without dot", func(c *Config) { c.Snapshot.Extension = "txt" }},
		{"negative delay", func(c *Config) { c.Computer.ThinkDelayMS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestThinkDelay(t *testing.T) {
	if got := DefaultConfig().ThinkDelay(); got != 400*time.Millisecond {
		t.Errorf("ThinkDelay() = %v, want 400ms", got)
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantAdvisor string
		wantHint    string
	}{
		{DifficultyEasy, "simple", "extended"},
		{DifficultyNormal, "extended", "simple"},
		{DifficultyHard, "extended", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Advisor != tt.wantAdvisor {
				t.Errorf("Advisor = %q, want %q", cfg.Advisor, tt.wantAdvisor)
			}
			if cfg.HintAdvisor != tt.wantHint {
				t.Errorf("HintAdvisor = %q, want %q", cfg.HintAdvisor, tt.wantHint)
			}
			if cfg.HintsEnabled() != (tt.wantHint != "") {
				t.Errorf("HintsEnabled() = %v", cfg.HintsEnabled())
			}
		})
	}

	cfg := DefaultConfig()
	ApplyPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("empty preset should leave the config unchanged")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("ParseDifficulty(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseDifficulty("fixed"); err == nil {
		t.Error("ParseDifficulty(fixed) should fail")
	}
}
