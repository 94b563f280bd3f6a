// Package backtest replays strategy signals through a deterministic trade
// simulation and orchestrates the externally visible "run backtest"
// operation: fetch candles, evaluate the strategy, simulate execution,
// persist the outcome.
package backtest

import (
	"github.com/quantdesk/quantdesk/internal/core"
)

// Simulation is the output bundle of one simulator run.
type Simulation struct {
	Trades  []core.Trade
	Equity  []core.EquityPoint
	Summary core.Summary
}

// positionState tracks whether the simulated account holds shares.
type positionState int

const (
	stateFlat positionState = iota
	stateLong
)

// position is the single mutable position of one simulation run. quantity > 0
// implies stateLong; quantity == 0 implies stateFlat.
type position struct {
	state      positionState
	quantity   int64
	entryPrice float64
}
