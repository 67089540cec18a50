package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/connect.yaml
var defaultConnectYAML []byte

// DefaultConnectConfig returns the built-in configuration.
// It mirrors defaults/connect.yaml and is used if the embedded file fails to parse.
func DefaultConnectConfig() ConnectConfig {
	return ConnectConfig{
		Display: DisplayConfig{
			CellWidth:  6,
			FlashTicks: 9,
		},
		Variants: []VariantConfig{
			{
				ID:          "connect",
				Title:       "Connect",
				Description: "Classic 5x8 board, levels 2-8 in play",
				Width:       5,
				Height:      8,
				MinLevel:    1,
				MaxLevel:    4,
			},
			{
				ID:          "connect_wide",
				Title:       "Connect (Wide)",
				Description: "Square 8x8 board with a wider level window",
				Width:       8,
				Height:      8,
				MinLevel:    1,
				MaxLevel:    5,
			},
			{
				ID:          "connect_mini",
				Title:       "Connect (Mini)",
				Description: "Quick 4x4 board with two levels in play",
				Width:       4,
				Height:      4,
				MinLevel:    1,
				MaxLevel:    3,
			},
		},
	}
}

// EmbeddedConnectConfig returns the configuration shipped in the binary.
func EmbeddedConnectConfig() ConnectConfig {
	var cfg ConnectConfig
	if err := yaml.Unmarshal(defaultConnectYAML, &cfg); err != nil {
		return DefaultConnectConfig()
	}
	return cfg
}
