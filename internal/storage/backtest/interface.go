// Package backtest persists finished backtest records, keyed by owning user.
package backtest

import (
	"context"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Store defines the persistence interface for backtest records.
type Store interface {
	// Save persists a record atomically, assigning its ID and CreatedAt.
	Save(ctx context.Context, record *core.BacktestRecord) error

	// List returns all records owned by userID, newest first.
	List(ctx context.Context, userID string) ([]*core.BacktestRecord, error)

	// Get returns the record with the given ID if owned by userID,
	// or NotFound.
	Get(ctx context.Context, userID, id string) (*core.BacktestRecord, error)

	// Close releases any underlying resources.
	Close() error
}
