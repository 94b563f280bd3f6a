package core

import "time"

// Candle represents one OHLCV bar. Candle sequences are ordered by strictly
// increasing Time; gaps (weekends, halts) are allowed.
type Candle struct {
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"` // "1m", "5m", "1d"
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	Time     time.Time `json:"time"`
}

// IsValid checks if the candle has required fields
func (c Candle) IsValid() bool {
	return c.Symbol != "" && c.Close > 0
}

// SignalAction represents a per-bar trading decision
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
)

// Signal is one per-bar decision emitted by a strategy. A strategy produces
// exactly one Signal per input candle; bars before the strategy's lookback
// is satisfied carry ActionHold.
type Signal struct {
	Index  int          `json:"index"` // original bar index in the candle sequence
	Time   time.Time    `json:"time"`
	Action SignalAction `json:"action"`
	Price  float64      `json:"price"` // close at the signal bar
}

// TradeSide is the executed direction of a trade
type TradeSide string

const (
	TradeBuy  TradeSide = "BUY"
	TradeSell TradeSide = "SELL"
)

// Trade is one executed buy or sell. Profit is nil for an opening BUY and
// set to the realized round-trip P&L on the closing SELL.
type Trade struct {
	Time     time.Time `json:"time"`
	Side     TradeSide `json:"side"`
	Price    float64   `json:"price"`
	Quantity int64     `json:"quantity"`
	Profit   *float64  `json:"profit"`
}

// IsWin reports whether the trade closed with a positive realized profit.
func (t Trade) IsWin() bool {
	return t.Profit != nil && *t.Profit > 0
}

// IsClosing reports whether the trade closes a position.
func (t Trade) IsClosing() bool {
	return t.Side == TradeSell
}

// EquityPoint is a mark-to-market snapshot of portfolio value at one bar
type EquityPoint struct {
	Time   time.Time `json:"time"`
	Equity float64   `json:"equity"`
}

// Summary holds the aggregate statistics of one backtest run
type Summary struct {
	InitialCapital   float64 `json:"initial_capital"`
	FinalCapital     float64 `json:"final_capital"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	TotalTrades      int     `json:"total_trades"`
	WinningTrades    int     `json:"winning_trades"`
	LosingTrades     int     `json:"losing_trades"`
	WinRate          float64 `json:"win_rate"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	AvgTradeProfit   float64 `json:"avg_trade_profit"`
}

// BacktestRecord is the persisted outcome of one backtest run, owned by the
// requesting user. The ID is assigned by the persistence store.
type BacktestRecord struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Strategy   string             `json:"strategy"`
	Symbol     string             `json:"symbol"`
	Start      time.Time          `json:"start"`
	End        time.Time          `json:"end"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
	Summary    Summary            `json:"summary"`
	Trades     []Trade            `json:"trades"`
	Equity     []EquityPoint      `json:"equity"`
	CreatedAt  time.Time          `json:"created_at"`
}
