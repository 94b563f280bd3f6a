package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantdesk/quantdesk/internal/backtest"
	"github.com/quantdesk/quantdesk/internal/core"
	backteststore "github.com/quantdesk/quantdesk/internal/storage/backtest"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

type stubProvider struct{}

func (stubProvider) Candles(_ context.Context, symbol, interval string, start, _ time.Time) ([]core.Candle, error) {
	closes := []float64{10, 10, 12, 15, 14}
	candles := make([]core.Candle, len(closes))
	for i, c := range closes {
		candles[i] = core.Candle{
			Symbol: symbol, Interval: interval,
			Open: c, High: c, Low: c, Close: c, Volume: 1000,
			Time: start.AddDate(0, 0, i),
		}
	}
	return candles, nil
}

func testServer(t *testing.T, apiKey string) *Server {
	t.Helper()

	catalog := strategy.NewCatalog()
	catalog.Register(strategy.NewDefinition("scripted", "test fixture", nil,
		func(strategy.ParameterSet) (strategy.Strategy, error) {
			return scriptedStrategy{}, nil
		}))

	backtester := backtest.NewBacktester(stubProvider{}, catalog, backteststore.NewMemoryStore())

	return NewServer(Config{
		Host:    "127.0.0.1",
		Port:    0,
		APIKey:  apiKey,
		Version: "test",
	}, backtester, catalog, nil, nil)
}

type scriptedStrategy struct{}

func (scriptedStrategy) Name() string { return "scripted" }

func (scriptedStrategy) MinBars() int { return 1 }

func (scriptedStrategy) Signals(candles []core.Candle) ([]core.Signal, error) {
	signals := make([]core.Signal, len(candles))
	for i, c := range candles {
		action := core.ActionHold
		switch i {
		case 1:
			action = core.ActionBuy
		case 3:
			action = core.ActionSell
		}
		signals[i] = core.Signal{Index: i, Time: c.Time, Action: action, Price: c.Close}
	}
	return signals, nil
}

func runRequestBody() *bytes.Buffer {
	body, _ := json.Marshal(map[string]any{
		"symbol":   "ACME",
		"strategy": "scripted",
		"start":    "2024-01-01",
		"end":      "2024-02-01",
	})
	return bytes.NewBuffer(body)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return envelope.Data
}

func TestServer_RunBacktest(t *testing.T) {
	srv := testServer(t, "")

	req := httptest.NewRequest("POST", "/api/backtests", runRequestBody())
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	if data["id"] == "" || data["user_id"] != "user-1" {
		t.Errorf("record = %v", data)
	}
	summary, ok := data["summary"].(map[string]any)
	if !ok || summary["final_capital"].(float64) != 1500 {
		t.Errorf("summary = %v", data["summary"])
	}
}

func TestServer_RunRequiresUser(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/api/backtests", runRequestBody()))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_UnknownStrategyIs404(t *testing.T) {
	srv := testServer(t, "")

	body, _ := json.Marshal(map[string]any{
		"symbol":   "ACME",
		"strategy": "no_such_strategy",
		"start":    "2024-01-01",
		"end":      "2024-02-01",
	})
	req := httptest.NewRequest("POST", "/api/backtests", bytes.NewBuffer(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if envelope.Error.Code != "UNKNOWN_STRATEGY" {
		t.Errorf("error code = %s", envelope.Error.Code)
	}
}

func TestServer_BadDateIs400(t *testing.T) {
	srv := testServer(t, "")

	body, _ := json.Marshal(map[string]any{
		"symbol":   "ACME",
		"strategy": "scripted",
		"start":    "01/01/2024",
		"end":      "2024-02-01",
	})
	req := httptest.NewRequest("POST", "/api/backtests", bytes.NewBuffer(body))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServer_ListAndGetScopedToUser(t *testing.T) {
	srv := testServer(t, "")

	req := httptest.NewRequest("POST", "/api/backtests", runRequestBody())
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup run failed: %d", rec.Code)
	}
	id := decodeData(t, rec)["id"].(string)

	// Owner sees the record.
	req = httptest.NewRequest("GET", "/api/backtests/"+id, nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("owner Get status = %d", rec.Code)
	}

	// Another user does not.
	req = httptest.NewRequest("GET", "/api/backtests/"+id, nil)
	req.Header.Set("X-User-ID", "user-2")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user Get status = %d, want 404", rec.Code)
	}

	// List returns only the owner's records.
	req = httptest.NewRequest("GET", "/api/backtests", nil)
	req.Header.Set("X-User-ID", "user-2")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var envelope struct {
		Data []any `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if len(envelope.Data) != 0 {
		t.Errorf("user-2 list = %d records, want 0", len(envelope.Data))
	}
}

func TestServer_Strategies(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/strategies", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var envelope struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &envelope)
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "scripted" {
		t.Errorf("strategies = %+v", envelope.Data)
	}
}

func TestServer_Health(t *testing.T) {
	srv := testServer(t, "")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestServer_APIKeyAuth(t *testing.T) {
	srv := testServer(t, "secret")

	// Missing key
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	// Wrong key
	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want 401", rec.Code)
	}

	// Correct key
	req = httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("correct key status = %d, want 200", rec.Code)
	}
}
