package strategy

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/indicator"
)

// BollingerBounce trades band re-entries: buy when price climbs back above
// the lower band after touching it, sell when price falls back below the
// upper band after touching it.
type BollingerBounce struct {
	period     int
	multiplier float64
}

func bollingerDefinition() Definition {
	return Definition{
		Name:        "bollinger_bounce",
		Description: "Bollinger band touch-and-reenter",
		Params: []ParamSpec{
			{Name: "period", Description: "band window", Default: 20, Min: 5, Max: 200, Step: 1},
			{Name: "stdDev", Description: "standard deviation multiplier", Default: 2, Min: 0.5, Max: 4, Step: 0.1},
		},
		build: func(p ParameterSet) (Strategy, error) {
			return NewBollingerBounce(int(p["period"]), p["stdDev"])
		},
	}
}

// NewBollingerBounce creates a Bollinger band reversal strategy.
func NewBollingerBounce(period int, multiplier float64) (*BollingerBounce, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("bollinger period must be >= 1, got %d", period))
	}
	if multiplier <= 0 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("bollinger multiplier must be > 0, got %g", multiplier))
	}
	return &BollingerBounce{period: period, multiplier: multiplier}, nil
}

func (s *BollingerBounce) Name() string {
	return "bollinger_bounce"
}

func (s *BollingerBounce) MinBars() int {
	return s.period
}

func (s *BollingerBounce) Signals(candles []core.Candle) ([]core.Signal, error) {
	prices := closes(candles)

	bands, err := indicator.Bollinger(prices, s.period, s.multiplier)
	if err != nil {
		return nil, err
	}

	signals := holdSignals(candles)

	for i := 1; i < len(bands.Middle); i++ {
		prevBar := bands.Middle[i-1].Index
		bar := bands.Middle[i].Index

		prevPrice := prices[prevBar]
		currPrice := prices[bar]

		switch {
		case prevPrice <= bands.Lower[i-1].Value && currPrice > bands.Lower[i].Value:
			signals[bar].Action = core.ActionBuy
		case prevPrice >= bands.Upper[i-1].Value && currPrice < bands.Upper[i].Value:
			signals[bar].Action = core.ActionSell
		}
	}

	return signals, nil
}
