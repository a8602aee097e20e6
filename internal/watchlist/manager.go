package watchlist

import (
	"log"
	"os"
	"slices"
	"strings"
	"sync"

	"EquitySentinel/internal/model"
)

// Manager tracks the scanned symbols and their last label with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading state from disk and seeding it with
// initial symbols when the file does not exist yet. An emptied list stays empty.
func NewManager(filePath string, initial []string) (*Manager, error) {
	_, statErr := os.Stat(filePath)
	fresh := os.IsNotExist(statErr)

	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	if fresh {
		for _, s := range initial {
			if s = normalize(s); s != "" && !slices.Contains(state.Symbols, s) {
				state.Symbols = append(state.Symbols, s)
			}
		}
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Symbols returns a copy of the watched symbols.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Symbols)
}

// LastLabel returns the label recorded by the previous scan.
func (m *Manager) LastLabel(symbol string) (model.Label, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.state.LastLabels[normalize(symbol)]
	return l, ok
}

// Add watches symbol. Returns false if it was already watched.
func (m *Manager) Add(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := normalize(symbol)
	if s == "" || slices.Contains(m.state.Symbols, s) {
		return false
	}
	m.state.Symbols = append(m.state.Symbols, s)
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save watchlist: %v", err)
	}
	return true
}

// Remove stops watching symbol. Returns false if it was not watched.
func (m *Manager) Remove(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := normalize(symbol)
	i := slices.Index(m.state.Symbols, s)
	if i < 0 {
		return false
	}
	m.state.Symbols = slices.Delete(m.state.Symbols, i, i+1)
	delete(m.state.LastLabels, s)
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save watchlist: %v", err)
	}
	return true
}

// UpdateLabel stores the latest label and reports whether it differs from the previous one.
// The first label seen for a symbol counts as a change.
func (m *Manager) UpdateLabel(symbol string, label model.Label) (previous model.Label, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := normalize(symbol)
	previous, seen := m.state.LastLabels[s]
	if seen && previous == label {
		return previous, false
	}
	m.state.LastLabels[s] = label
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save watchlist: %v", err)
	}
	return previous, true
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
