// Package marketdata supplies historical OHLCV candles from external
// sources. Providers return candles ordered by ascending time.
package marketdata

import (
	"context"
	"time"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Provider fetches historical candles for a symbol and window.
type Provider interface {
	Name() string
	Candles(ctx context.Context, symbol, interval string, start, end time.Time) ([]core.Candle, error)
}
