package indicator

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
)

// RSI calculates Wilder's smoothed Relative Strength Index. The seed average
// gain/loss is a simple mean over the first period deltas, so the first point
// is attached to bar index period. RSI is 100 when the average loss is zero.
func RSI(prices []float64, period int) ([]Point, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("rsi period must be >= 1, got %d", period))
	}
	if len(prices) < period+1 {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("rsi(%d) needs %d prices, have %d", period, period+1, len(prices)))
	}

	// Seed averages over the first period deltas
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	result := make([]Point, 0, len(prices)-period)
	result = append(result, Point{Index: period, Value: rsiValue(avgGain, avgLoss)})

	// Wilder smoothing with weight (period-1)/period
	for i := period + 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		var gain, loss float64
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		result = append(result, Point{Index: i, Value: rsiValue(avgGain, avgLoss)})
	}

	return result, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
