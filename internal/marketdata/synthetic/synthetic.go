// Package synthetic generates deterministic pseudo-random candles for
// development and offline use. The same symbol and window always produce
// the same series.
package synthetic

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Provider generates a seeded random-walk price series.
type Provider struct {
	basePrice  float64
	volatility float64
}

// New creates a synthetic provider. Prices start near basePrice and move
// with per-bar volatility (fraction of price, e.g. 0.02).
func New(basePrice, volatility float64) *Provider {
	if basePrice <= 0 {
		basePrice = 100
	}
	if volatility <= 0 {
		volatility = 0.02
	}
	return &Provider{basePrice: basePrice, volatility: volatility}
}

func (p *Provider) Name() string {
	return "synthetic"
}

// Candles generates one candle per interval step across [start, end).
// Weekend bars are skipped for daily data.
func (p *Provider) Candles(_ context.Context, symbol, interval string, start, end time.Time) ([]core.Candle, error) {
	step := intervalDuration(interval)
	rng := rand.New(rand.NewSource(seed(symbol)))

	price := p.basePrice * (0.5 + rng.Float64())

	var candles []core.Candle
	for t := start; t.Before(end); t = t.Add(step) {
		if step == 24*time.Hour {
			if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}

		drift := rng.NormFloat64() * p.volatility * price
		open := price
		close := math.Max(0.01, price+drift)
		high := math.Max(open, close) * (1 + rng.Float64()*p.volatility/2)
		low := math.Min(open, close) * (1 - rng.Float64()*p.volatility/2)

		candles = append(candles, core.Candle{
			Symbol:   symbol,
			Interval: interval,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    close,
			Volume:   int64(1e5 + rng.Intn(9e5)),
			Time:     t,
		})
		price = close
	}

	return candles, nil
}

func intervalDuration(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "1h":
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

func seed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}
