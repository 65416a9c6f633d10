package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/google/uuid"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	"github.com/okian/boardscore/pkg/metrics"
)

// Default store configuration.
const (
	defaultCapacity = 10_000
	defaultTTL      = 12 * time.Hour
	sheetCost       = 1
)

// MemoryStore keeps sheets in a bounded cache. Writes are serialized by mu so
// Update is a consistent read-modify-write; the cache handles expiry and
// eviction.
type MemoryStore struct {
	mu    sync.Mutex
	cache *theine.Cache[string, *Sheet]

	capacity int
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewMemoryStore creates an in-memory sheet store.
func NewMemoryStore(opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		capacity: defaultCapacity,
		ttl:      defaultTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := theine.NewBuilder[string, *Sheet](int64(s.capacity)).
		RemovalListener(func(_ string, _ *Sheet, reason theine.RemoveReason) {
			switch reason {
			case theine.EVICTED:
				metrics.RecordSheetEvicted("capacity")
			case theine.EXPIRED:
				metrics.RecordSheetEvicted("expired")
			case theine.REMOVED:
				metrics.RecordSheetEvicted("deleted")
			}
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreSetup, err)
	}
	s.cache = cache
	return s, nil
}

func (s *MemoryStore) put(sheet *Sheet) {
	if s.ttl > 0 {
		s.cache.SetWithTTL(sheet.ID, sheet, sheetCost, s.ttl)
		return
	}
	s.cache.Set(sheet.ID, sheet, sheetCost)
}

// Create stores a new sheet with the given players.
func (s *MemoryStore) Create(_ context.Context, players []ttr.PlayerInfo) (Sheet, error) {
	if len(players) == 0 {
		return Sheet{}, ErrNoPlayers
	}
	now := s.now()
	sheet := Sheet{
		ID:        s.newID(),
		Players:   players,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored := sheet.Clone()

	s.mu.Lock()
	s.put(&stored)
	s.mu.Unlock()

	metrics.RecordSheetCreated()
	metrics.UpdateSheetsActive(s.cache.Len())
	return stored.Clone(), nil
}

// Get returns a copy of the sheet with id.
func (s *MemoryStore) Get(_ context.Context, id string) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.cache.Get(id)
	if !ok {
		return Sheet{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sheet.Clone(), nil
}

// Update applies fn to a copy of the sheet and stores it if fn succeeds.
// A successful update also resets the sheet's expiry.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Sheet) error) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.cache.Get(id)
	if !ok {
		return Sheet{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return Sheet{}, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	s.put(&next)
	return next.Clone(), nil
}

// Delete removes the sheet with id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.cache.Delete(id)
	metrics.UpdateSheetsActive(s.cache.Len())
	return nil
}

// Count returns the number of sheets currently cached.
func (s *MemoryStore) Count(_ context.Context) int {
	return s.cache.Len()
}

// Close releases the cache's background resources.
func (s *MemoryStore) Close() error {
	s.cache.Close()
	return nil
}
