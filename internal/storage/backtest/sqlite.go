package backtest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/quantdesk/quantdesk/internal/core"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS backtests (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	strategy   TEXT NOT NULL,
	symbol     TEXT NOT NULL,
	start      TIMESTAMP NOT NULL,
	end_time   TIMESTAMP NOT NULL,
	parameters TEXT NOT NULL,
	summary    TEXT NOT NULL,
	trades     TEXT NOT NULL,
	equity     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_backtests_user ON backtests(user_id, created_at DESC);
`

// SQLiteStore persists backtest records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts the record in a single transaction and assigns ID and
// CreatedAt.
func (s *SQLiteStore) Save(ctx context.Context, record *core.BacktestRecord) error {
	if record.UserID == "" {
		return core.WrapError(core.ErrPersistenceFailed, fmt.Errorf("record has no user"))
	}

	parameters, err := json.Marshal(record.Parameters)
	if err != nil {
		return core.WrapError(core.ErrPersistenceFailed, err)
	}
	summary, err := json.Marshal(record.Summary)
	if err != nil {
		return core.WrapError(core.ErrPersistenceFailed, err)
	}
	trades, err := json.Marshal(record.Trades)
	if err != nil {
		return core.WrapError(core.ErrPersistenceFailed, err)
	}
	equity, err := json.Marshal(record.Equity)
	if err != nil {
		return core.WrapError(core.ErrPersistenceFailed, err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO backtests (id, user_id, strategy, symbol, start, end_time,
			parameters, summary, trades, equity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, record.UserID, record.Strategy, record.Symbol,
		record.Start.UTC(), record.End.UTC(),
		string(parameters), string(summary), string(trades), string(equity),
		createdAt)
	if err != nil {
		return core.WrapError(core.ErrPersistenceFailed, err)
	}

	record.ID = id
	record.CreatedAt = createdAt
	return nil
}

// List returns the user's records, newest first.
func (s *SQLiteStore) List(ctx context.Context, userID string) ([]*core.BacktestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, strategy, symbol, start, end_time,
			parameters, summary, trades, equity, created_at
		FROM backtests WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, core.WrapError(core.ErrPersistenceFailed, err)
	}
	defer rows.Close()

	var records []*core.BacktestRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, core.WrapError(core.ErrPersistenceFailed, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrPersistenceFailed, err)
	}
	return records, nil
}

// Get returns one record by owner and ID.
func (s *SQLiteStore) Get(ctx context.Context, userID, id string) (*core.BacktestRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, strategy, symbol, start, end_time,
			parameters, summary, trades, equity, created_at
		FROM backtests WHERE user_id = ? AND id = ?`, userID, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrPersistenceFailed, err)
	}
	return record, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*core.BacktestRecord, error) {
	var record core.BacktestRecord
	var parameters, summary, trades, equity string

	err := row.Scan(&record.ID, &record.UserID, &record.Strategy, &record.Symbol,
		&record.Start, &record.End,
		&parameters, &summary, &trades, &equity, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(parameters), &record.Parameters); err != nil {
		return nil, fmt.Errorf("decoding parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &record.Summary); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	if err := json.Unmarshal([]byte(trades), &record.Trades); err != nil {
		return nil, fmt.Errorf("decoding trades: %w", err)
	}
	if err := json.Unmarshal([]byte(equity), &record.Equity); err != nil {
		return nil, fmt.Errorf("decoding equity: %w", err)
	}
	return &record, nil
}
