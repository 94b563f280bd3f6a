package strategy

import (
	"errors"
	"testing"

	"github.com/quantdesk/quantdesk/internal/core"
)

func TestCrossover_ImplementsStrategy(t *testing.T) {
	var _ Strategy = (*Crossover)(nil)
}

func TestCrossover_TriangleWaveBuysAndSells(t *testing.T) {
	// Three cycles of rise-then-fall: the short EMA must cross the long EMA
	// in both directions at least once per cycle.
	var prices []float64
	for cycle := 0; cycle < 3; cycle++ {
		prices = append(prices, 100, 102, 104, 106, 108, 110, 108, 106, 104, 102, 100)
	}

	s, err := NewCrossover(2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signals, err := s.Signals(candlesFromCloses(prices))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(signals) != len(prices) {
		t.Fatalf("expected %d signals, got %d", len(prices), len(signals))
	}
	if countActions(signals, core.ActionBuy) == 0 {
		t.Error("expected at least one BUY across the cycles")
	}
	if countActions(signals, core.ActionSell) == 0 {
		t.Error("expected at least one SELL across the cycles")
	}

	// Leading bars before the long EMA exists must be HOLD
	for i := 0; i < 4; i++ {
		if signals[i].Action != core.ActionHold {
			t.Errorf("signal %d before lookback = %s, want HOLD", i, signals[i].Action)
		}
	}
}

func TestCrossover_FlatSeriesAllHold(t *testing.T) {
	s, err := NewCrossover(2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signals, err := s.Signals(flatCandles(100, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countActions(signals, core.ActionHold) != 50 {
		t.Error("flat series must never cross")
	}
}

func TestCrossover_CrossingFiresOnce(t *testing.T) {
	// One decline followed by a sustained rally: the golden cross fires on
	// the regime change, not on every bar the short EMA stays above.
	prices := []float64{100, 98, 96, 94, 92, 90, 95, 100, 105, 110, 115, 120, 125, 130}

	s, err := NewCrossover(2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signals, err := s.Signals(candlesFromCloses(prices))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := countActions(signals, core.ActionBuy); got != 1 {
		t.Errorf("expected exactly 1 BUY on a single regime change, got %d", got)
	}
}

func TestCrossover_InsufficientData(t *testing.T) {
	s, err := NewCrossover(2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Signals(flatCandles(100, 5))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestNewCrossover_InvalidPeriods(t *testing.T) {
	if _, err := NewCrossover(10, 5); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("short >= long should fail, got %v", err)
	}
	if _, err := NewCrossover(0, 5); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("zero period should fail, got %v", err)
	}
}
