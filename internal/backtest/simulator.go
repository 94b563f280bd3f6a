package backtest

import (
	"fmt"
	"math"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Simulate replays a signal sequence against an initial capital amount and
// produces the trade log, per-bar equity curve, and summary statistics.
//
// Execution model: single position, no leverage, no shorting. A BUY while
// flat spends the whole cash balance at floor(cash/price) shares; a SELL
// while long liquidates the position; every other signal/state combination
// is a no-op. A position still open at the final bar is force-closed at
// that bar's price.
func Simulate(signals []core.Signal, initialCapital float64) (*Simulation, error) {
	if initialCapital <= 0 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("initial capital must be > 0, got %g", initialCapital))
	}

	sim := &Simulation{}

	if len(signals) == 0 {
		sim.Equity = []core.EquityPoint{{Equity: initialCapital}}
		sim.Summary = buildSummary(nil, initialCapital, initialCapital, 0)
		return sim, nil
	}

	cash := initialCapital
	pos := position{state: stateFlat}

	peak := initialCapital
	var maxDrawdown float64

	for _, sig := range signals {
		switch {
		case sig.Action == core.ActionBuy && pos.state == stateFlat:
			quantity := int64(math.Floor(cash / sig.Price))
			if quantity > 0 {
				cash -= float64(quantity) * sig.Price
				pos = position{state: stateLong, quantity: quantity, entryPrice: sig.Price}
				sim.Trades = append(sim.Trades, core.Trade{
					Time:     sig.Time,
					Side:     core.TradeBuy,
					Price:    sig.Price,
					Quantity: quantity,
				})
			}

		case sig.Action == core.ActionSell && pos.state == stateLong:
			cash += float64(pos.quantity) * sig.Price
			profit := float64(pos.quantity) * (sig.Price - pos.entryPrice)
			sim.Trades = append(sim.Trades, core.Trade{
				Time:     sig.Time,
				Side:     core.TradeSell,
				Price:    sig.Price,
				Quantity: pos.quantity,
				Profit:   &profit,
			})
			pos = position{state: stateFlat}
		}

		// Mark-to-market equity for this bar
		equity := cash + float64(pos.quantity)*sig.Price
		sim.Equity = append(sim.Equity, core.EquityPoint{Time: sig.Time, Equity: equity})

		if equity > peak {
			peak = equity
		} else if peak > 0 {
			drawdown := (peak - equity) / peak * 100
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	// Forced liquidation at the last bar's price
	if pos.state == stateLong {
		last := signals[len(signals)-1]
		cash += float64(pos.quantity) * last.Price
		profit := float64(pos.quantity) * (last.Price - pos.entryPrice)
		sim.Trades = append(sim.Trades, core.Trade{
			Time:     last.Time,
			Side:     core.TradeSell,
			Price:    last.Price,
			Quantity: pos.quantity,
			Profit:   &profit,
		})
		pos = position{state: stateFlat}
	}

	sim.Summary = buildSummary(sim.Trades, initialCapital, cash, maxDrawdown)
	return sim, nil
}
