package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/quantdesk/quantdesk/internal/core"
)

func TestSMA_Calculate(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15}

	sma, err := SMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// SMA(3) for [10,11,12,13,14,15]:
	// index 2 = (10+11+12)/3 = 11
	// index 3 = (11+12+13)/3 = 12
	// index 4 = (12+13+14)/3 = 13
	// index 5 = (13+14+15)/3 = 14
	expected := []Point{{2, 11}, {3, 12}, {4, 13}, {5, 14}}

	if len(sma) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(sma))
	}

	for i, want := range expected {
		if sma[i] != want {
			t.Errorf("sma[%d] = %+v, want %+v", i, sma[i], want)
		}
	}
}

func TestSMA_NotEnoughData(t *testing.T) {
	_, err := SMA([]float64{10, 11}, 5)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEMA_Calculate(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15}

	ema, err := EMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ema) != 4 {
		t.Fatalf("expected 4 points, got %d", len(ema))
	}

	// First EMA = SMA seed = 11, attached to bar index 2
	if ema[0].Index != 2 || ema[0].Value != 11 {
		t.Errorf("seed EMA = %+v, want {2 11}", ema[0])
	}

	// k = 2/(3+1) = 0.5; next value = (13-11)*0.5 + 11 = 12
	if !almostEqual(ema[1].Value, 12, 1e-9) {
		t.Errorf("ema[1] = %f, want 12", ema[1].Value)
	}

	// Subsequent EMAs trend upward on a rising series
	for i := 1; i < len(ema); i++ {
		if ema[i].Value <= ema[i-1].Value {
			t.Errorf("EMA should be increasing, ema[%d]=%f <= ema[%d]=%f",
				i, ema[i].Value, i-1, ema[i-1].Value)
		}
		if ema[i].Index != ema[i-1].Index+1 {
			t.Errorf("EMA indexes should be consecutive, got %d after %d",
				ema[i].Index, ema[i-1].Index)
		}
	}
}

func TestEMA_NotEnoughData(t *testing.T) {
	_, err := EMA([]float64{10, 11}, 5)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEMA_InvalidPeriod(t *testing.T) {
	_, err := EMA([]float64{10, 11}, 0)
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestEMA_Deterministic(t *testing.T) {
	prices := []float64{42.1, 40.7, 44.3, 43.9, 45.2, 44.1, 46.8}

	a, err := EMA(prices, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := EMA(prices, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical inputs produced different outputs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}
