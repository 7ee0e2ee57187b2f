package store

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("store: key not found")

// MemDB is an in-memory KeyValueStore, adapted from
// accdb/memorydb/memorydb.go.
type MemDB struct {
	mu sync.RWMutex
	db map[string][]byte
}

// NewMemDB returns an empty MemDB.
func NewMemDB() *MemDB {
	return &MemDB{db: make(map[string][]byte)}
}

// Has implements KeyValueReader.
func (m *MemDB) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.db[string(key)]
	return ok, nil
}

// Get implements KeyValueReader.
func (m *MemDB) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.db[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements KeyValueWriter.
func (m *MemDB) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.db[string(key)] = append([]byte(nil), value...)
	return nil
}

// Delete implements KeyValueWriter.
func (m *MemDB) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.db, string(key))
	return nil
}

// NewBatch returns a Batch buffering writes for this MemDB.
func (m *MemDB) NewBatch() Batch {
	return &memBatch{host: m}
}

// Keys returns every key currently in the store, sorted lexically for
// deterministic iteration order (this is iteration over the *backing
// store*, not the trie — the trie itself still offers no key-ordered
// iteration, per spec.md §1 Non-goals).
func (m *MemDB) Keys() [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.db))
	for k := range m.db {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}
