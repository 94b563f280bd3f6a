package indicator

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
)

// MACDResult holds the three MACD series. Line starts at bar index slow-1;
// Signal and Histogram share indexes and start at bar index slow+signal-2,
// so Histogram[i] corresponds to Line[i+signal-1].
type MACDResult struct {
	Line      []Point
	Signal    []Point
	Histogram []Point
}

// MACD calculates the Moving Average Convergence Divergence: the fast EMA
// minus the slow EMA, its own signal-period EMA, and their difference.
func MACD(prices []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast < 1 || slow < 1 || signal < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("macd periods must be >= 1, got fast=%d slow=%d signal=%d", fast, slow, signal))
	}
	if fast >= slow {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("macd fast period %d must be shorter than slow period %d", fast, slow))
	}
	if len(prices) < slow+signal {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("macd(%d,%d,%d) needs %d prices, have %d", fast, slow, signal, slow+signal, len(prices)))
	}

	fastEMA, err := EMA(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(prices, slow)
	if err != nil {
		return nil, err
	}

	// The slow EMA starts later; align the fast EMA to it by original index.
	offset := len(fastEMA) - len(slowEMA)
	line := make([]Point, len(slowEMA))
	for i, p := range slowEMA {
		line[i] = Point{Index: p.Index, Value: fastEMA[i+offset].Value - p.Value}
	}

	signalEMA, err := EMA(Values(line), signal)
	if err != nil {
		return nil, err
	}

	// Re-attach the signal line to the bar indexes of the MACD line it was
	// computed over, then difference the aligned pairs.
	signalLine := make([]Point, len(signalEMA))
	histogram := make([]Point, len(signalEMA))
	for i, p := range signalEMA {
		barIndex := line[p.Index].Index
		signalLine[i] = Point{Index: barIndex, Value: p.Value}
		histogram[i] = Point{Index: barIndex, Value: line[p.Index].Value - p.Value}
	}

	return &MACDResult{Line: line, Signal: signalLine, Histogram: histogram}, nil
}
