package store

import (
	"context"
	"sync"
	"time"
)

// sweepInterval is how often the memory store scans for expired artifacts.
const sweepInterval = time.Minute

// MemoryStore is an in-process artifact store. A background janitor
// sweeps expired artifacts so abandoned downloads don't accumulate.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Artifact
	ttl   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a memory store whose artifacts default to the
// given TTL. ttl <= 0 falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		items: make(map[string]*Artifact),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stages an artifact, stamping creation and expiry times when unset.
func (s *MemoryStore) Put(ctx context.Context, art *Artifact) error {
	now := time.Now()
	if art.CreatedAt.IsZero() {
		art.CreatedAt = now
	}
	if art.ExpiresAt.IsZero() {
		art.ExpiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[art.ID] = art
	return nil
}

// Get retrieves an artifact. Expired artifacts are removed and read as
// missing.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	art, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	if art.IsExpired() {
		delete(s.items, id)
		return nil, nil
	}
	return art, nil
}

// Delete removes an artifact. Deleting an absent ID is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Len reports the number of staged, unexpired artifacts.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, art := range s.items {
		if !art.IsExpired() {
			n++
		}
	}
	return n, nil
}

// Cleanup removes expired artifacts immediately.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, art := range s.items {
		if art.IsExpired() {
			delete(s.items, id)
		}
	}
}

// Close stops the janitor. The store stays usable but no longer sweeps.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stop:
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
