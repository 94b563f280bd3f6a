package marketdata

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Fallback tries each provider in order and returns the first successful,
// non-empty result. Individual provider failures are logged and skipped.
type Fallback struct {
	providers []Provider
	logger    *zap.Logger
}

// NewFallback chains providers by priority.
func NewFallback(logger *zap.Logger, providers ...Provider) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{providers: providers, logger: logger}
}

func (f *Fallback) Name() string {
	return "fallback"
}

// Candles queries providers in order until one returns data.
func (f *Fallback) Candles(ctx context.Context, symbol, interval string, start, end time.Time) ([]core.Candle, error) {
	var lastErr error
	for _, p := range f.providers {
		candles, err := p.Candles(ctx, symbol, interval, start, end)
		if err != nil {
			f.logger.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol),
				zap.Error(err))
			lastErr = err
			continue
		}
		if len(candles) == 0 {
			f.logger.Debug("provider returned no data",
				zap.String("provider", p.Name()),
				zap.String("symbol", symbol))
			continue
		}
		return candles, nil
	}

	if lastErr != nil {
		return nil, core.WrapError(core.ErrDataSourceFailed,
			fmt.Errorf("all %d providers failed, last: %w", len(f.providers), lastErr))
	}
	return nil, nil
}
