package indicator

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
)

// EMA calculates the Exponential Moving Average with smoothing 2/(period+1).
// The first point is the simple average of the first period prices, attached
// to bar index period-1; one point follows per remaining price.
func EMA(prices []float64, period int) ([]Point, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("ema period must be >= 1, got %d", period))
	}
	if len(prices) < period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("ema(%d) needs %d prices, have %d", period, period, len(prices)))
	}

	result := make([]Point, 0, len(prices)-period+1)
	multiplier := 2.0 / float64(period+1)

	// Seed with SMA over the first period prices
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	result = append(result, Point{Index: period - 1, Value: ema})

	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result = append(result, Point{Index: i, Value: ema})
	}

	return result, nil
}

// SMA calculates the Simple Moving Average over a trailing window.
// The first point is attached to bar index period-1.
func SMA(prices []float64, period int) ([]Point, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("sma period must be >= 1, got %d", period))
	}
	if len(prices) < period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("sma(%d) needs %d prices, have %d", period, period, len(prices)))
	}

	result := make([]Point, 0, len(prices)-period+1)

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	result = append(result, Point{Index: period - 1, Value: sum / float64(period)})

	// Rolling calculation
	for i := period; i < len(prices); i++ {
		sum = sum - prices[i-period] + prices[i]
		result = append(result, Point{Index: i, Value: sum / float64(period)})
	}

	return result, nil
}
