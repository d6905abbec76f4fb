package calculator

import (
	"errors"
	"math"

	"github.com/str04/stock-scanner/internal/model"
)

// LifetimeHighs computes the running maximum close over the series and a
// flag per bar marking new lifetime highs. A close that ties the running
// maximum counts as a high.
func LifetimeHighs(bars []model.PriceBar) (highs []float64, isHigh []bool) {
	highs = make([]float64, len(bars))
	isHigh = make([]bool, len(bars))
	max := math.Inf(-1)
	for i, b := range bars {
		if b.Close > max {
			max = b.Close
		}
		highs[i] = max
		isHigh[i] = b.Close == max
	}
	return highs, isHigh
}

// MinLow returns the lowest low over bars[from:to). The window is clamped
// to the series bounds; an empty window after clamping is an error.
func MinLow(bars []model.PriceBar, from, to int) (float64, error) {
	from, to = clamp(len(bars), from, to)
	if from >= to {
		return 0, errors.New("empty window")
	}
	min := bars[from].Low
	for _, b := range bars[from+1 : to] {
		if b.Low < min {
			min = b.Low
		}
	}
	return min, nil
}

// MaxClose returns the highest close over bars[from:to), clamped like MinLow.
func MaxClose(bars []model.PriceBar, from, to int) (float64, error) {
	from, to = clamp(len(bars), from, to)
	if from >= to {
		return 0, errors.New("empty window")
	}
	max := bars[from].Close
	for _, b := range bars[from+1 : to] {
		if b.Close > max {
			max = b.Close
		}
	}
	return max, nil
}

// PercentReturn computes the total percentage return from start to end.
func PercentReturn(start, end float64) (float64, error) {
	if start == 0 || math.IsNaN(start) || math.IsNaN(end) {
		return 0, errors.New("degenerate start price")
	}
	return (end - start) / start * 100, nil
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(n, from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	return from, to
}
