package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/f3rmion/kyara/internal/jikan"
)

// DefaultKey is the storage key the favorites object lives under.
const DefaultKey = "jikan_favorites"

const opTimeout = 5 * time.Second

// Store reads and writes the favorites map through a Backend.
//
// Every Add and Remove writes the whole map back synchronously. Storage
// failures never reach the caller: reads degrade to an empty map and
// failed writes are logged while the in-memory map keeps the change.
type Store struct {
	backend Backend
	key     string
	log     zerolog.Logger

	mu      sync.Mutex
	lastErr error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreLogger sets the logger used for storage failures.
func WithStoreLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore returns a store over b.
func NewStore(b Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: b,
		key:     DefaultKey,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted map. A missing or unparseable value yields an
// empty map.
func (s *Store) Load() *Map {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return NewMap()
	}
	if err != nil {
		s.fail(&StorageError{Op: "read", Key: s.key, Err: err})
		return NewMap()
	}

	m := NewMap()
	if err := json.Unmarshal(data, m); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("favorites blob is corrupt, starting empty")
		return NewMap()
	}
	return m
}

// IsFavorite reports whether id is in m.
func (s *Store) IsFavorite(id int, m *Map) bool {
	return m.Has(id)
}

// Add records c in m, persists m and returns it.
func (s *Store) Add(c jikan.Character, m *Map) *Map {
	if m == nil {
		m = NewMap()
	}
	m.set(Key(c.MalID), FromCharacter(c))
	s.save(m)
	return m
}

// Remove deletes id from m if present, persists m and returns it.
func (s *Store) Remove(id int, m *Map) *Map {
	if m == nil {
		m = NewMap()
	}
	m.delete(Key(id))
	s.save(m)
	return m
}

// List returns the favorites in insertion order.
func (s *Store) List(m *Map) []Record {
	return m.Records()
}

// Count returns the number of favorites in m.
func (s *Store) Count(m *Map) int {
	return m.Len()
}

// Err returns the most recent storage error, or nil after a successful write.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) save(m *Map) {
	data, err := json.Marshal(m)
	if err != nil {
		s.fail(&StorageError{Op: "encode", Key: s.key, Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		s.fail(&StorageError{Op: "write", Key: s.key, Err: err})
		return
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Store) fail(err *StorageError) {
	s.log.Error().Err(err).Msg("favorites storage failed")
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
