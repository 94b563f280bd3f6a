package backtest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

// CandleProvider fetches historical candles for a symbol and window.
type CandleProvider interface {
	Candles(ctx context.Context, symbol, interval string, start, end time.Time) ([]core.Candle, error)
}

// RecordStore persists and retrieves backtest records.
type RecordStore interface {
	Save(ctx context.Context, record *core.BacktestRecord) error
	List(ctx context.Context, userID string) ([]*core.BacktestRecord, error)
	Get(ctx context.Context, userID, id string) (*core.BacktestRecord, error)
}

// ReportArchiver exports finished records to cold storage. Archival is
// best-effort: a failure is logged, never surfaced to the caller.
type ReportArchiver interface {
	ArchiveRecord(ctx context.Context, record *core.BacktestRecord) error
}

// Recorder receives run-level observability counters. The metrics registry
// satisfies it; a nil Recorder disables recording.
type Recorder interface {
	RecordBacktest(status string, duration time.Duration)
	RecordSignals(strategy string, count int)
	RecordTrades(strategy string, count int)
}

// RunRequest describes one backtest to execute.
type RunRequest struct {
	UserID         string
	Strategy       string
	Symbol         string
	Interval       string
	Start          time.Time
	End            time.Time
	Parameters     strategy.ParameterSet
	InitialCapital float64
}

// Backtester orchestrates the full run: resolve strategy, fetch candles,
// evaluate signals, simulate trades, persist the record.
type Backtester struct {
	provider CandleProvider
	catalog  *strategy.Catalog
	store    RecordStore
	archiver ReportArchiver
	recorder Recorder
	logger   *zap.Logger
}

// Option configures optional Backtester collaborators.
type Option func(*Backtester)

// WithArchiver enables best-effort cold-storage export of finished records.
func WithArchiver(a ReportArchiver) Option {
	return func(b *Backtester) { b.archiver = a }
}

// WithRecorder enables run metrics.
func WithRecorder(r Recorder) Option {
	return func(b *Backtester) { b.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backtester) { b.logger = l }
}

// NewBacktester creates a backtester over the given market data provider,
// strategy catalog, and record store.
func NewBacktester(provider CandleProvider, catalog *strategy.Catalog, store RecordStore, opts ...Option) *Backtester {
	b := &Backtester{
		provider: provider,
		catalog:  catalog,
		store:    store,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes one backtest synchronously and returns the persisted record.
func (b *Backtester) Run(ctx context.Context, req RunRequest) (*core.BacktestRecord, error) {
	started := time.Now()
	record, err := b.run(ctx, req)
	if b.recorder != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		b.recorder.RecordBacktest(status, time.Since(started))
	}
	return record, err
}

func (b *Backtester) run(ctx context.Context, req RunRequest) (*core.BacktestRecord, error) {
	def, ok := b.catalog.Get(req.Strategy)
	if !ok {
		return nil, core.WrapError(core.ErrUnknownStrategy,
			fmt.Errorf("strategy %q", req.Strategy))
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	strat, err := def.Build(req.Parameters)
	if err != nil {
		return nil, err
	}

	interval := req.Interval
	if interval == "" {
		interval = "1d"
	}

	candles, err := b.provider.Candles(ctx, req.Symbol, interval, req.Start, req.End)
	if err != nil {
		return nil, core.WrapError(core.ErrDataSourceFailed, err)
	}
	if len(candles) == 0 {
		return nil, core.WrapError(core.ErrNoHistoricalData,
			fmt.Errorf("symbol %s between %s and %s",
				req.Symbol, req.Start.Format("2006-01-02"), req.End.Format("2006-01-02")))
	}

	signals, err := strat.Signals(candles)
	if err != nil {
		return nil, err
	}
	if b.recorder != nil {
		b.recorder.RecordSignals(req.Strategy, len(signals))
	}

	sim, err := Simulate(signals, req.InitialCapital)
	if err != nil {
		return nil, err
	}
	if b.recorder != nil {
		b.recorder.RecordTrades(req.Strategy, len(sim.Trades))
	}

	record := &core.BacktestRecord{
		UserID:     req.UserID,
		Strategy:   req.Strategy,
		Symbol:     req.Symbol,
		Start:      req.Start,
		End:        req.End,
		Parameters: req.Parameters,
		Summary:    sim.Summary,
		Trades:     sim.Trades,
		Equity:     sim.Equity,
	}

	if err := b.store.Save(ctx, record); err != nil {
		return nil, core.WrapError(core.ErrPersistenceFailed, err)
	}

	b.logger.Info("backtest completed",
		zap.String("id", record.ID),
		zap.String("user_id", req.UserID),
		zap.String("strategy", req.Strategy),
		zap.String("symbol", req.Symbol),
		zap.Int("candles", len(candles)),
		zap.Int("trades", sim.Summary.TotalTrades),
		zap.Float64("profit_pct", sim.Summary.ProfitPercentage))

	if b.archiver != nil {
		if err := b.archiver.ArchiveRecord(ctx, record); err != nil {
			b.logger.Warn("archiving backtest record failed",
				zap.String("id", record.ID),
				zap.Error(err))
		}
	}

	return record, nil
}

// List returns all records owned by userID, newest first.
func (b *Backtester) List(ctx context.Context, userID string) ([]*core.BacktestRecord, error) {
	return b.store.List(ctx, userID)
}

// Get returns one record owned by userID.
func (b *Backtester) Get(ctx context.Context, userID, id string) (*core.BacktestRecord, error) {
	return b.store.Get(ctx, userID, id)
}

func validateRequest(req RunRequest) error {
	if req.Symbol == "" {
		return core.WrapError(core.ErrInvalidParameter, fmt.Errorf("symbol is required"))
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return core.WrapError(core.ErrInvalidParameter, fmt.Errorf("start and end are required"))
	}
	if !req.End.After(req.Start) {
		return core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("end %s must be after start %s",
				req.End.Format("2006-01-02"), req.Start.Format("2006-01-02")))
	}
	if req.InitialCapital <= 0 {
		return core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("initial capital must be > 0, got %g", req.InitialCapital))
	}
	return nil
}
