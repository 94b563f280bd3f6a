package backtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quantdesk/quantdesk/internal/core"
)

// MemoryStore is an in-memory record store for development and tests.
type MemoryStore struct {
	records []*core.BacktestRecord
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the record and assigns ID and CreatedAt.
func (m *MemoryStore) Save(ctx context.Context, record *core.BacktestRecord) error {
	if record.UserID == "" {
		return core.WrapError(core.ErrPersistenceFailed, fmt.Errorf("record has no user"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	stored := *record
	m.records = append(m.records, &stored)
	return nil
}

// List returns the user's records, newest first.
func (m *MemoryStore) List(ctx context.Context, userID string) ([]*core.BacktestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*core.BacktestRecord
	for _, r := range m.records {
		if r.UserID == userID {
			copied := *r
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Get returns one record by owner and ID.
func (m *MemoryStore) Get(ctx context.Context, userID, id string) (*core.BacktestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.UserID == userID && r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
