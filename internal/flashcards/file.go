package flashcards

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadState reads persisted engine state from a YAML file.
//
// A missing file yields empty state: first runs start from nothing. A file
// that cannot be decoded also yields empty state, with a warning, so a
// corrupted store never prevents the application from starting.
func LoadState(path string) (State, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var state State
	if err := yaml.NewDecoder(file).Decode(&state); err != nil {
		slog.Warn("state file could not be decoded, starting from empty state", "path", path, "error", err)
		return State{}, nil
	}
	return state, nil
}

// SaveState writes the engine state to a YAML file, creating parent
// directories as needed.
func SaveState(path string, state State) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewEncoder(file).Encode(state); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return nil
}
