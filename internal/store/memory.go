package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tracker-tv/phi-guard/models"
)

type memoryStore struct {
	mu      sync.RWMutex
	records []models.AuditRecord
	byHash  map[string]struct{}
}

func NewMemoryStore() Store {
	return &memoryStore{byHash: map[string]struct{}{}}
}

func (m *memoryStore) Append(_ context.Context, rec models.AuditRecord) error {
	if rec.ID == "" {
		return &PersistenceError{Op: "append", Err: errors.New("record has no id")}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.ID == rec.ID {
			return &PersistenceError{Op: "append", Err: errors.New("duplicate record id " + rec.ID)}
		}
	}
	m.records = append(m.records, rec)
	if rec.LedgerHash != "" {
		m.byHash[rec.LedgerHash] = struct{}{}
	}
	return nil
}

func (m *memoryStore) ListByRepo(_ context.Context, repo string, limit int) ([]models.AuditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AuditRecord
	for _, r := range m.records {
		if r.RepoName != repo {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryStore) HasLedgerHash(_ context.Context, hash string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byHash[hash]
	return ok, nil
}
