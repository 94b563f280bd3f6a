package strategy

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/indicator"
)

// MACDMomentum trades MACD histogram zero-line crossings: buy when the
// histogram turns positive with the MACD line above its signal line, sell
// when it turns negative with the MACD line below.
type MACDMomentum struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

func macdDefinition() Definition {
	return Definition{
		Name:        "macd_momentum",
		Description: "MACD histogram zero-line crossing",
		Params: []ParamSpec{
			{Name: "fastPeriod", Description: "fast EMA period", Default: 12, Min: 2, Max: 100, Step: 1},
			{Name: "slowPeriod", Description: "slow EMA period", Default: 26, Min: 5, Max: 200, Step: 1},
			{Name: "signalPeriod", Description: "signal EMA period", Default: 9, Min: 2, Max: 50, Step: 1},
		},
		build: func(p ParameterSet) (Strategy, error) {
			return NewMACDMomentum(int(p["fastPeriod"]), int(p["slowPeriod"]), int(p["signalPeriod"]))
		},
	}
}

// NewMACDMomentum creates a MACD momentum strategy.
func NewMACDMomentum(fast, slow, signal int) (*MACDMomentum, error) {
	if fast < 1 || slow < 1 || signal < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("macd periods must be >= 1, got fast=%d slow=%d signal=%d", fast, slow, signal))
	}
	if fast >= slow {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("fast period %d must be shorter than slow period %d", fast, slow))
	}
	return &MACDMomentum{fastPeriod: fast, slowPeriod: slow, signalPeriod: signal}, nil
}

func (s *MACDMomentum) Name() string {
	return "macd_momentum"
}

func (s *MACDMomentum) MinBars() int {
	return s.slowPeriod + s.signalPeriod
}

func (s *MACDMomentum) Signals(candles []core.Candle) ([]core.Signal, error) {
	result, err := indicator.MACD(closes(candles), s.fastPeriod, s.slowPeriod, s.signalPeriod)
	if err != nil {
		return nil, err
	}

	signals := holdSignals(candles)

	// Histogram[i] is aligned with Line[i+signalPeriod-1]; see indicator.MACD.
	lineOffset := s.signalPeriod - 1
	for i := 1; i < len(result.Histogram); i++ {
		prev := result.Histogram[i-1].Value
		curr := result.Histogram[i].Value
		line := result.Line[i+lineOffset].Value
		sig := result.Signal[i].Value

		bar := result.Histogram[i].Index
		switch {
		case prev <= 0 && curr > 0 && line > sig:
			signals[bar].Action = core.ActionBuy
		case prev >= 0 && curr < 0 && line < sig:
			signals[bar].Action = core.ActionSell
		}
	}

	return signals, nil
}
