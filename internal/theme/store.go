package theme

import (
	"sync"

	"github.com/ziadkadry99/scholarsite/internal/db"
)

// MemoryStore keeps preferences in a map.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SQLStore keeps preferences in the local state database.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore wraps an open database.
func NewSQLStore(d *db.DB) *SQLStore {
	return &SQLStore{db: d}
}

func (s *SQLStore) Load(key string) (string, bool, error) {
	return s.db.Preference(key)
}

func (s *SQLStore) Save(key, value string) error {
	return s.db.SetPreference(key, value)
}

func (s *SQLStore) Delete(key string) error {
	return s.db.DeletePreference(key)
}
