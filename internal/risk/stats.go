package risk

import (
	"math"
	"sort"
)

// annualization factor for daily volatility, assuming 252 trading days.
var sqrt252 = math.Sqrt(252)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the N-1 (sample) standard deviation, NaN below 2 points.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

// quantile computes the q-th quantile with linear interpolation between
// order statistics.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// dailyReturns is the percentage change between consecutive closes, one
// entry shorter than the input (the first change is undefined and dropped).
func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// rollingStd returns the trailing-window sample standard deviations. Entries
// exist only where a full window is available; shorter input yields an empty
// series rather than partial windows.
func rollingStd(values []float64, window int) []float64 {
	if len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		out = append(out, sampleStd(values[i-window+1:i+1]))
	}
	return out
}

// rollingMax returns the max over the trailing window ending at each index
// from window-1 on.
func rollingMax(values []float64, window int) []float64 {
	if len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		peak := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] > peak {
				peak = values[j]
			}
		}
		out = append(out, peak)
	}
	return out
}
