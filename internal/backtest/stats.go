package backtest

import (
	"github.com/quantdesk/quantdesk/internal/core"
)

// buildSummary computes the aggregate statistics of a finished run. A trade
// is counted as one round trip, i.e. one closing SELL; an opening BUY on its
// own contributes nothing until it closes.
func buildSummary(trades []core.Trade, initialCapital, finalCapital, maxDrawdown float64) core.Summary {
	var winning, losing int
	var totalProfit float64

	for _, t := range trades {
		if t.Profit == nil {
			continue
		}
		totalProfit += *t.Profit
		if *t.Profit > 0 {
			winning++
		} else {
			losing++
		}
	}

	total := winning + losing

	var winRate, avgProfit float64
	if total > 0 {
		winRate = float64(winning) / float64(total) * 100
		avgProfit = totalProfit / float64(total)
	}

	profit := finalCapital - initialCapital

	return core.Summary{
		InitialCapital:   initialCapital,
		FinalCapital:     finalCapital,
		Profit:           profit,
		ProfitPercentage: profit / initialCapital * 100,
		TotalTrades:      total,
		WinningTrades:    winning,
		LosingTrades:     losing,
		WinRate:          winRate,
		MaxDrawdown:      maxDrawdown,
		AvgTradeProfit:   avgProfit,
	}
}
