package store

import "sync"

// MemoryStore is a map-backed BlobStore. Setting FailWrites makes every Put
// return that error, which is how tests simulate a full disk.
type MemoryStore struct {
	mu         sync.Mutex
	data       map[string][]byte
	FailWrites error
	Writes     int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return clone(v), ok, nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = clone(value)
	m.Writes++
	return nil
}

func (m *MemoryStore) Close() error { return nil }
