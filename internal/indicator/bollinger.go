package indicator

import (
	"fmt"
	"math"

	"github.com/quantdesk/quantdesk/internal/core"
)

// BollingerBands holds the three Bollinger series. All three share the same
// bar indexes, starting at period-1.
type BollingerBands struct {
	Middle []Point
	Upper  []Point
	Lower  []Point
}

// Bollinger calculates Bollinger Bands: a rolling simple mean plus/minus a
// multiple of the population standard deviation over a trailing window.
func Bollinger(prices []float64, period int, multiplier float64) (*BollingerBands, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("bollinger period must be >= 1, got %d", period))
	}
	if multiplier <= 0 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("bollinger multiplier must be > 0, got %g", multiplier))
	}
	if len(prices) < period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("bollinger(%d) needs %d prices, have %d", period, period, len(prices)))
	}

	n := len(prices) - period + 1
	bands := &BollingerBands{
		Middle: make([]Point, 0, n),
		Upper:  make([]Point, 0, n),
		Lower:  make([]Point, 0, n),
	}

	for end := period - 1; end < len(prices); end++ {
		window := prices[end-period+1 : end+1]

		var sum float64
		for _, p := range window {
			sum += p
		}
		mean := sum / float64(period)

		var variance float64
		for _, p := range window {
			variance += (p - mean) * (p - mean)
		}
		stddev := math.Sqrt(variance / float64(period))

		bands.Middle = append(bands.Middle, Point{Index: end, Value: mean})
		bands.Upper = append(bands.Upper, Point{Index: end, Value: mean + multiplier*stddev})
		bands.Lower = append(bands.Lower, Point{Index: end, Value: mean - multiplier*stddev})
	}

	return bands, nil
}
