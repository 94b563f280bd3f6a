// Package strategy turns named strategies and parameter sets into per-bar
// trading signals over a candle sequence.
package strategy

import (
	"github.com/quantdesk/quantdesk/internal/core"
)

// ParameterSet maps parameter names to numeric values.
type ParameterSet map[string]float64

// ParamSpec describes one strategy parameter. Min/Max/Step are advisory
// bounds surfaced to clients; the engine enforces only structural validity.
type ParamSpec struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Default     float64 `json:"default"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	Step        float64 `json:"step,omitempty"`
}

// Strategy evaluates a candle sequence into a same-length signal sequence.
// Bars before the strategy's lookback is satisfied emit ActionHold.
type Strategy interface {
	Name() string

	// MinBars is the minimum candle count Signals accepts without failing
	// with InsufficientData.
	MinBars() int

	// Signals returns exactly one signal per input candle.
	Signals(candles []core.Candle) ([]core.Signal, error)
}

// Definition is a catalog entry: metadata plus a constructor binding a
// resolved parameter set to a runnable strategy.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`

	build func(ParameterSet) (Strategy, error)
}

// NewDefinition creates a catalog entry from metadata and a constructor.
func NewDefinition(name, description string, params []ParamSpec, build func(ParameterSet) (Strategy, error)) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Params:      params,
		build:       build,
	}
}

// Build constructs the strategy with defaults applied for missing parameters
// and unknown keys dropped.
func (d Definition) Build(params ParameterSet) (Strategy, error) {
	return d.build(d.resolve(params))
}

// resolve applies schema defaults. Unknown keys are ignored; missing keys
// fall back to their declared default.
func (d Definition) resolve(params ParameterSet) ParameterSet {
	resolved := make(ParameterSet, len(d.Params))
	for _, spec := range d.Params {
		if v, ok := params[spec.Name]; ok {
			resolved[spec.Name] = v
		} else {
			resolved[spec.Name] = spec.Default
		}
	}
	return resolved
}

// holdSignals builds the baseline all-HOLD signal sequence for candles.
func holdSignals(candles []core.Candle) []core.Signal {
	signals := make([]core.Signal, len(candles))
	for i, c := range candles {
		signals[i] = core.Signal{
			Index:  i,
			Time:   c.Time,
			Action: core.ActionHold,
			Price:  c.Close,
		}
	}
	return signals
}

// closes extracts the closing prices of a candle sequence.
func closes(candles []core.Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close
	}
	return prices
}
