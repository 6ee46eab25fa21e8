package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// Store persists encoded sessions. LoadSession returns domain.ErrNotFound
// for unknown or expired ids. SaveSession must keep the order ids already
// stored under a live id, so concurrent requests of one browser do not drop
// each other's anonymous orders.
type Store interface {
	LoadSession(ctx context.Context, id uuid.UUID) ([]byte, error)
	SaveSession(ctx context.Context, id uuid.UUID, data []byte, expiresAt time.Time) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type memoryRecord struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]memoryRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]memoryRecord),
		now:     time.Now,
	}
}

func (m *MemoryStore) LoadSession(_ context.Context, id uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok || !rec.expiresAt.After(m.now()) {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), rec.data...), nil
}

func (m *MemoryStore) SaveSession(_ context.Context, id uuid.UUID, data []byte, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec, ok := m.records[id]; ok && rec.expiresAt.After(m.now()) {
		merged, err := mergeOrderIDs(rec.data, data)
		if err != nil {
			return fmt.Errorf("mergeOrderIDs: %w", err)
		}
		data = merged
	}

	m.records[id] = memoryRecord{data: append([]byte(nil), data...), expiresAt: expiresAt}
	return nil
}

func mergeOrderIDs(stored, incoming []byte) ([]byte, error) {
	old, err := decode(stored)
	if err != nil {
		return nil, fmt.Errorf("decode stored: %w", err)
	}

	d, err := decode(incoming)
	if err != nil {
		return nil, fmt.Errorf("decode incoming: %w", err)
	}

	ids := old.OrderIDs
	for _, id := range d.OrderIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	d.OrderIDs = ids

	return encode(d)
}

func (m *MemoryStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

func (m *MemoryStore) DeleteExpiredSessions(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	now := m.now()
	for id, rec := range m.records {
		if !rec.expiresAt.After(now) {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}
