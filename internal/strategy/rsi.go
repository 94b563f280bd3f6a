package strategy

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/indicator"
)

// RSIReversal trades oversold/overbought reversals: buy when RSI climbs back
// out of the oversold zone, sell when it drops back out of the overbought
// zone. The re-entry crossing (not zone membership) triggers the signal, so
// a long oversold stretch produces a single BUY on the way out.
type RSIReversal struct {
	period     int
	oversold   float64
	overbought float64
}

func rsiDefinition() Definition {
	return Definition{
		Name:        "rsi_reversal",
		Description: "RSI oversold/overbought reversal",
		Params: []ParamSpec{
			{Name: "period", Description: "RSI period", Default: 14, Min: 2, Max: 100, Step: 1},
			{Name: "oversold", Description: "oversold threshold", Default: 30, Min: 1, Max: 50, Step: 1},
			{Name: "overbought", Description: "overbought threshold", Default: 70, Min: 50, Max: 99, Step: 1},
		},
		build: func(p ParameterSet) (Strategy, error) {
			return NewRSIReversal(int(p["period"]), p["oversold"], p["overbought"])
		},
	}
}

// NewRSIReversal creates an RSI reversal strategy.
func NewRSIReversal(period int, oversold, overbought float64) (*RSIReversal, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("rsi period must be >= 1, got %d", period))
	}
	if oversold >= overbought {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("oversold threshold %g must be below overbought threshold %g", oversold, overbought))
	}
	return &RSIReversal{period: period, oversold: oversold, overbought: overbought}, nil
}

func (s *RSIReversal) Name() string {
	return "rsi_reversal"
}

func (s *RSIReversal) MinBars() int {
	return s.period + 1
}

func (s *RSIReversal) Signals(candles []core.Candle) ([]core.Signal, error) {
	rsi, err := indicator.RSI(closes(candles), s.period)
	if err != nil {
		return nil, err
	}

	signals := holdSignals(candles)

	for i := 1; i < len(rsi); i++ {
		prev := rsi[i-1].Value
		curr := rsi[i].Value

		bar := rsi[i].Index
		switch {
		case prev <= s.oversold && curr > s.oversold:
			signals[bar].Action = core.ActionBuy
		case prev >= s.overbought && curr < s.overbought:
			signals[bar].Action = core.ActionSell
		}
	}

	return signals, nil
}
