package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"EquitySentinel/internal/model"
)

// State is the persisted watchlist.
type State struct {
	Symbols    []string               `json:"symbols"`
	LastLabels map[string]model.Label `json:"last_labels"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// LoadState reads the watchlist from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{LastLabels: map[string]model.Label{}}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.LastLabels == nil {
		state.LastLabels = map[string]model.Label{}
	}
	return &state, nil
}

// SaveState writes the watchlist to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
