package slot

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	modified time.Time
}

// Memory keeps saves in process memory. Intended for tests.
type Memory struct {
	mu    sync.RWMutex
	saves map[string]memoryEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{saves: make(map[string]memoryEntry)}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) Write(_ context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[name] = memoryEntry{data: slices.Clone(data), modified: time.Now().UTC()}
	return nil
}

func (m *Memory) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.saves[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(entry.data), nil
}

func (m *Memory) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]Info, 0, len(m.saves))
	for name, entry := range m.saves {
		infos = append(infos, Info{Name: name, Size: int64(len(entry.data)), Modified: entry.modified})
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

func (m *Memory) Delete(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saves[name]
	delete(m.saves, name)
	return ok, nil
}
