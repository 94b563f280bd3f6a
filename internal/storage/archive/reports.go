package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Reports exports finished backtest records as JSON blobs, keyed
// backtests/<user>/<id>.json.
type Reports struct {
	storage Storage
}

// NewReports creates a report exporter over the given storage backend.
func NewReports(storage Storage) *Reports {
	return &Reports{storage: storage}
}

func recordPath(userID, id string) string {
	return fmt.Sprintf("backtests/%s/%s.json", userID, id)
}

// ArchiveRecord serializes the record and writes it to cold storage.
func (r *Reports) ArchiveRecord(ctx context.Context, record *core.BacktestRecord) error {
	if record.ID == "" || record.UserID == "" {
		return fmt.Errorf("record must have ID and user before archiving")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return r.storage.Write(ctx, recordPath(record.UserID, record.ID), data)
}

// ReadRecord loads an archived record.
func (r *Reports) ReadRecord(ctx context.Context, userID, id string) (*core.BacktestRecord, error) {
	data, err := r.storage.Read(ctx, recordPath(userID, id))
	if err != nil {
		return nil, err
	}
	var record core.BacktestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &record, nil
}

// ListRecords returns the archived record paths for a user.
func (r *Reports) ListRecords(ctx context.Context, userID string) ([]string, error) {
	return r.storage.List(ctx, "backtests/"+userID)
}
