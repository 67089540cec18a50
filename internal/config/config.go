// Package config provides YAML-based configuration loading for the connect
// puzzle: board variants, display tuning and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// ConnectConfig contains all configuration for the connect puzzle.
type ConnectConfig struct {
	Display  DisplayConfig   `yaml:"display"`
	Variants []VariantConfig `yaml:"variants"`
}

// DisplayConfig tunes how the board is drawn.
type DisplayConfig struct {
	CellWidth  int `yaml:"cell_width"`
	FlashTicks int `yaml:"flash_ticks"`
}

// VariantConfig describes one playable board.
type VariantConfig struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	MinLevel    int    `yaml:"min_level"` // Lowest spawnable level (inclusive)
	MaxLevel    int    `yaml:"max_level"` // Spawn ceiling (exclusive)
}

// Variant returns the variant with the given ID.
func (c ConnectConfig) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// Validate checks every variant and the display settings.
func (c ConnectConfig) Validate() error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants defined", ErrInvalidConfig)
	}
	if c.Display.CellWidth < 3 {
		return fmt.Errorf("%w: cell_width %d is below 3", ErrInvalidConfig, c.Display.CellWidth)
	}
	if c.Display.FlashTicks < 0 {
		return fmt.Errorf("%w: negative flash_ticks", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if err := v.Validate(); err != nil {
			return err
		}
		if seen[v.ID] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalidConfig, v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// Validate checks the board size and level window of one variant.
func (v VariantConfig) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: variant without id", ErrInvalidConfig)
	}
	if v.Width < 2 || v.Height < 2 {
		return fmt.Errorf("%w: variant %q board %dx%d is smaller than 2x2", ErrInvalidConfig, v.ID, v.Width, v.Height)
	}
	if v.MinLevel < 0 || v.MinLevel >= v.MaxLevel {
		return fmt.Errorf("%w: variant %q level window [%d, %d) is empty", ErrInvalidConfig, v.ID, v.MinLevel, v.MaxLevel)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
// Harder presets put more distinct levels in play, which makes chains rarer.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// windowSizeForPreset returns how many levels spawn under a preset,
// or 0 to keep the variant's own window.
func windowSizeForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return 5
	default:
		return 0
	}
}

// ApplyConnectPreset adjusts a variant's level window for a preset.
func ApplyConnectPreset(v *VariantConfig, preset DifficultyPreset) {
	if size := windowSizeForPreset(preset); size > 0 {
		v.MaxLevel = v.MinLevel + size
	}
}
