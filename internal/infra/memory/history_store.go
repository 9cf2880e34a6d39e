package memory

import (
	"sync"

	"trivia-duel/internal/domain"
)

// HistoryStore is an in-memory implementation of app.HistoryStore. It keeps at
// most limit snapshots, dropping the oldest first; limit <= 0 means unbounded.
type HistoryStore struct {
	mu        sync.RWMutex
	limit     int
	snapshots []domain.Snapshot
}

func NewHistoryStore(limit int) *HistoryStore {
	return &HistoryStore{limit: limit}
}

func (s *HistoryStore) Push(snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	if s.limit > 0 && len(s.snapshots) > s.limit {
		s.snapshots = append([]domain.Snapshot(nil), s.snapshots[len(s.snapshots)-s.limit:]...)
	}
}

func (s *HistoryStore) Pop() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return domain.Snapshot{}, false
	}
	last := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return last, true
}

func (s *HistoryStore) List() []domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Snapshot(nil), s.snapshots...)
}

func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
