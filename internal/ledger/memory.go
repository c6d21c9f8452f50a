package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/tracker-tv/phi-guard/models"
)

type MemoryBackend struct {
	mu     sync.Mutex
	chains map[string][]models.LedgerEntry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{chains: map[string][]models.LedgerEntry{}}
}

func (m *MemoryBackend) Head(_ context.Context, scope string) (*models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chain := m.chains[scope]
	if len(chain) == 0 {
		return nil, nil
	}
	head := chain[len(chain)-1]
	return &head, nil
}

func (m *MemoryBackend) Put(_ context.Context, e models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chain := m.chains[e.Scope]
	expected := GenesisHash
	if len(chain) > 0 {
		expected = chain[len(chain)-1].EntryHash
	}
	if e.PreviousHash != expected || e.Seq != uint64(len(chain)) {
		return ErrWriteConflict
	}

	m.chains[e.Scope] = append(chain, e)
	return nil
}

func (m *MemoryBackend) Entries(_ context.Context, scope string) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.LedgerEntry, len(m.chains[scope]))
	copy(out, m.chains[scope])
	return out, nil
}

func (m *MemoryBackend) Scopes(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scopes := make([]string, 0, len(m.chains))
	for s := range m.chains {
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)
	return scopes, nil
}
