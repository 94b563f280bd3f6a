package strategy

import (
	"fmt"

	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/indicator"
)

// Crossover implements a moving average crossover strategy: buy when the
// short EMA crosses above the long EMA (golden cross), sell when it crosses
// back below (death cross).
type Crossover struct {
	shortPeriod int
	longPeriod  int
}

func crossoverDefinition() Definition {
	return Definition{
		Name:        "ma_crossover",
		Description: "Moving average crossover (short EMA vs long EMA)",
		Params: []ParamSpec{
			{Name: "shortPeriod", Description: "short EMA period", Default: 10, Min: 2, Max: 100, Step: 1},
			{Name: "longPeriod", Description: "long EMA period", Default: 30, Min: 5, Max: 400, Step: 1},
		},
		build: func(p ParameterSet) (Strategy, error) {
			return NewCrossover(int(p["shortPeriod"]), int(p["longPeriod"]))
		},
	}
}

// NewCrossover creates a crossover strategy with the given EMA periods.
func NewCrossover(shortPeriod, longPeriod int) (*Crossover, error) {
	if shortPeriod < 1 || longPeriod < 1 {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("crossover periods must be >= 1, got short=%d long=%d", shortPeriod, longPeriod))
	}
	if shortPeriod >= longPeriod {
		return nil, core.WrapError(core.ErrInvalidParameter,
			fmt.Errorf("short period %d must be shorter than long period %d", shortPeriod, longPeriod))
	}
	return &Crossover{shortPeriod: shortPeriod, longPeriod: longPeriod}, nil
}

func (s *Crossover) Name() string {
	return "ma_crossover"
}

func (s *Crossover) MinBars() int {
	return s.longPeriod
}

func (s *Crossover) Signals(candles []core.Candle) ([]core.Signal, error) {
	prices := closes(candles)

	shortEMA, err := indicator.EMA(prices, s.shortPeriod)
	if err != nil {
		return nil, err
	}
	longEMA, err := indicator.EMA(prices, s.longPeriod)
	if err != nil {
		return nil, err
	}

	signals := holdSignals(candles)

	// The short EMA starts earlier; align the two by original bar index.
	offset := len(shortEMA) - len(longEMA)
	for i := 1; i < len(longEMA); i++ {
		prevShort := shortEMA[i-1+offset].Value
		currShort := shortEMA[i+offset].Value
		prevLong := longEMA[i-1].Value
		currLong := longEMA[i].Value

		bar := longEMA[i].Index
		switch {
		case prevShort <= prevLong && currShort > currLong:
			signals[bar].Action = core.ActionBuy
		case prevShort >= prevLong && currShort < currLong:
			signals[bar].Action = core.ActionSell
		}
	}

	return signals, nil
}
