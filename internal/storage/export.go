package storage

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

// SaveFile is the YAML form of a save, used to move boards between databases.
type SaveFile struct {
	Variant string          `yaml:"variant"`
	Board   engine.Snapshot `yaml:"board"`
}

// MarshalSave encodes a save as YAML.
func MarshalSave(save SavedGame) ([]byte, error) {
	data, err := yaml.Marshal(SaveFile{Variant: save.Variant, Board: save.Snapshot})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode save %q: %w", save.Name, err)
	}
	return data, nil
}

// UnmarshalSave decodes and validates a YAML save file.
func UnmarshalSave(data []byte) (SaveFile, error) {
	var f SaveFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return SaveFile{}, fmt.Errorf("storage: cannot parse save file: %w", err)
	}
	if f.Variant == "" {
		return SaveFile{}, errors.New("storage: save file has no variant")
	}
	if err := f.Board.Validate(); err != nil {
		return SaveFile{}, fmt.Errorf("storage: save file: %w", err)
	}
	return f, nil
}
