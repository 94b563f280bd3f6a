// Package yahoo fetches historical candles from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/quantdesk/quantdesk/internal/core"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// validSymbol matches stock symbols like AAPL, MSFT, 600519.SH, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Provider fetches candles from Yahoo Finance.
type Provider struct {
	client  *http.Client
	baseURL string
}

// Option configures the provider.
type Option func(*Provider)

// WithBaseURL overrides the chart API endpoint.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// New creates a Yahoo Finance provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return "yahoo"
}

// toYahooSymbol converts internal symbol format to Yahoo format
func toYahooSymbol(symbol string) string {
	// Shanghai stocks: 600519.SH -> 600519.SS
	if strings.HasSuffix(symbol, ".SH") {
		return strings.TrimSuffix(symbol, ".SH") + ".SS"
	}
	return symbol
}

func toYahooInterval(interval string) string {
	switch interval {
	case "1m", "5m", "1h", "1d":
		return interval
	default:
		return "1d"
	}
}

// Candles fetches historical OHLCV bars. Bars with missing quote fields are
// skipped rather than zero-filled.
func (p *Provider) Candles(ctx context.Context, symbol, interval string, start, end time.Time) ([]core.Candle, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?interval=%s&period1=%d&period2=%d",
		p.baseURL, toYahooSymbol(symbol), toYahooInterval(interval), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	r := result.Chart.Result[0]
	quotes := r.Indicators.Quote[0]

	candles := make([]core.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Open) || quotes.Open[i] == nil || quotes.Close[i] == nil {
			continue
		}
		var volume int64
		if quotes.Volume[i] != nil {
			volume = int64(*quotes.Volume[i])
		}
		candles = append(candles, core.Candle{
			Symbol:   symbol,
			Interval: interval,
			Open:     *quotes.Open[i],
			High:     *quotes.High[i],
			Low:      *quotes.Low[i],
			Close:    *quotes.Close[i],
			Volume:   volume,
			Time:     time.Unix(int64(ts), 0).UTC(),
		})
	}

	return candles, nil
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}
