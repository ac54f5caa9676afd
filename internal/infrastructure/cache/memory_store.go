package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is the lifetime of a cached upstream response
const DefaultTTL = 5 * time.Minute

// memoryEntry wraps a cached value with its expiration time
type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore implements Store using process-local storage.
// Expired entries are evicted lazily on read; there is no background
// sweeper, so an entry that is never read again simply lingers until
// the next Set overwrites it.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	// Stats for monitoring
	hits   int64
	misses int64
}

// MemoryStoreOption is a functional option for configuring the store
type MemoryStoreOption func(*MemoryStore)

// WithTTL sets the entry lifetime
func WithTTL(ttl time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

// WithLogger sets the logger for the store
func WithLogger(logger *zap.Logger) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests to simulate expiry
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a new in-memory cache store
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Get returns the cached value for key if present and fresh.
// An expired entry is deleted on the spot and reported as a miss.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if ok && s.now().Before(entry.expiresAt) {
		atomic.AddInt64(&s.hits, 1)
		s.logger.Debug("Cache hit", zap.String("key", key))
		return entry.data, true
	}

	if ok {
		s.mu.Lock()
		// Re-check under the write lock; a Set may have raced in
		if current, still := s.entries[key]; still && !s.now().Before(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
	}

	atomic.AddInt64(&s.misses, 1)
	s.logger.Debug("Cache miss", zap.String("key", key))
	return nil, false
}

// Set stores data under key, overwriting any existing entry
func (s *MemoryStore) Set(_ context.Context, key string, data []byte) {
	entry := memoryEntry{
		data:      data,
		expiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	s.logger.Debug("Cached entry",
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.Duration("ttl", s.ttl))
}

// Delete removes the entry for key if present
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns hit and miss counters
func (s *MemoryStore) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
