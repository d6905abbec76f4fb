package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/str04/stock-scanner/internal/model"
)

func barsFromCloses(closes ...float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func TestLifetimeHighs(t *testing.T) {
	bars := barsFromCloses(100, 98, 102, 102, 101)
	highs, isHigh := LifetimeHighs(bars)

	wantHighs := []float64{100, 100, 102, 102, 102}
	wantFlags := []bool{true, false, true, true, false}
	for i := range bars {
		if highs[i] != wantHighs[i] {
			t.Errorf("highs[%d] = %.1f, want %.1f", i, highs[i], wantHighs[i])
		}
		if isHigh[i] != wantFlags[i] {
			t.Errorf("isHigh[%d] = %v, want %v", i, isHigh[i], wantFlags[i])
		}
	}
}

func TestLifetimeHighs_TieCountsAsHigh(t *testing.T) {
	bars := barsFromCloses(100, 100, 100)
	_, isHigh := LifetimeHighs(bars)
	for i, h := range isHigh {
		if !h {
			t.Errorf("bar %d: tied close should flag as lifetime high", i)
		}
	}
}

func TestMinLow_ClampsToSeries(t *testing.T) {
	bars := barsFromCloses(5, 4, 3, 2, 1)
	got, err := MinLow(bars, 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("MinLow = %.1f, want 1", got)
	}
}

func TestMinLow_EmptyWindow(t *testing.T) {
	bars := barsFromCloses(1, 2, 3)
	if _, err := MinLow(bars, 3, 10); err == nil {
		t.Error("expected error for window past series end")
	}
	if _, err := MinLow(bars, 2, 2); err == nil {
		t.Error("expected error for zero-width window")
	}
}

func TestMaxClose(t *testing.T) {
	bars := barsFromCloses(1, 9, 3, 7)
	got, err := MaxClose(bars, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9 {
		t.Errorf("MaxClose = %.1f, want 9", got)
	}
}

func TestPercentReturn(t *testing.T) {
	tests := []struct {
		start, end float64
		want       float64
		wantErr    bool
	}{
		{100, 105, 5, false},
		{100, 97, -3, false},
		{50, 50, 0, false},
		{0, 100, 0, true},
		{math.NaN(), 100, 0, true},
	}
	for _, tt := range tests {
		got, err := PercentReturn(tt.start, tt.end)
		if tt.wantErr {
			if err == nil {
				t.Errorf("PercentReturn(%.1f, %.1f): expected error", tt.start, tt.end)
			}
			continue
		}
		if err != nil {
			t.Errorf("PercentReturn(%.1f, %.1f): %v", tt.start, tt.end, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PercentReturn(%.1f, %.1f) = %.4f, want %.4f", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{33.333333, 33.33},
		{15.126, 15.13},
		{-3.004, -3.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
