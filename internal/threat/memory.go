package threat

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// MemoryStore is an in-memory IndicatorStore keyed by indicator value.
// A later Put for the same value replaces the earlier one.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]Indicator
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{data: make(map[string]Indicator)} }

func (m *MemoryStore) Put(ctx context.Context, ind Indicator) error {
	m.mu.Lock()
	m.data[ind.Value] = ind
	m.mu.Unlock()
	slog.Debug("stored indicator", "value", ind.Value, "type", ind.Type)
	return nil
}

func (m *MemoryStore) Get(value string) (Indicator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ind, ok := m.data[value]
	return ind, ok
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// All returns the stored indicators sorted by value.
func (m *MemoryStore) All() []Indicator {
	m.mu.Lock()
	out := make([]Indicator, 0, len(m.data))
	for _, ind := range m.data {
		out = append(out, ind)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
