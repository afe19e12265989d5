package memory

import (
	"context"
	"sync"

	"diario/internal/core"
)

// Store keeps month tabs in memory.
type Store struct {
	mu     sync.Mutex
	tabs   map[string][][]string
	writes int
}

func New() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

// WriteMonth replaces the tab named after the month label.
func (s *Store) WriteMonth(_ context.Context, month core.Month, lines []core.Line) error {
	records := core.ExportRecords(lines)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[month.Label] = records
	s.writes++
	return nil
}

// Tab returns a copy of the rows stored under label.
func (s *Store) Tab(label string) ([][]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[label]
	if !ok {
		return nil, false
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, true
}

// Writes counts WriteMonth calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
