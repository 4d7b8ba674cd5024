package risk

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSampleStd(t *testing.T) {
	got := sampleStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := 2.13808993529939 // N-1 denominator
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("sampleStd = %v, want %v", got, want)
	}
}

func TestSampleStdDegenerate(t *testing.T) {
	if !math.IsNaN(sampleStd(nil)) {
		t.Error("sampleStd(nil) must be NaN")
	}
	if !math.IsNaN(sampleStd([]float64{1.5})) {
		t.Error("sampleStd of one point must be NaN")
	}
}

func TestQuantileInterpolates(t *testing.T) {
	values := []float64{30, 10, 20, 40, 50}
	// 5th percentile of 5 sorted points sits 20% of the way from 10 to 20.
	got := quantile(values, 0.05)
	if !almostEqual(got, 12, 1e-12) {
		t.Fatalf("quantile(0.05) = %v, want 12", got)
	}
	if got := quantile(values, 1); got != 50 {
		t.Fatalf("quantile(1) = %v, want 50", got)
	}
	if !math.IsNaN(quantile(nil, 0.05)) {
		t.Error("quantile of empty series must be NaN")
	}
}

func TestDailyReturns(t *testing.T) {
	returns := dailyReturns([]float64{100, 110, 99})
	if len(returns) != 2 {
		t.Fatalf("len = %d, want 2", len(returns))
	}
	if !almostEqual(returns[0], 0.10, 1e-12) || !almostEqual(returns[1], -0.10, 1e-12) {
		t.Fatalf("returns = %v", returns)
	}
	if dailyReturns([]float64{100}) != nil {
		t.Error("single close must yield no returns")
	}
}

func TestRollingMax(t *testing.T) {
	peaks := rollingMax([]float64{1, 3, 2, 5, 4}, 3)
	want := []float64{3, 5, 5}
	if len(peaks) != len(want) {
		t.Fatalf("len = %d, want %d", len(peaks), len(want))
	}
	for i := range want {
		if peaks[i] != want[i] {
			t.Fatalf("peaks = %v, want %v", peaks, want)
		}
	}
	if rollingMax([]float64{1, 2}, 3) != nil {
		t.Error("short series must yield no rolling max entries")
	}
}

func TestRollingStdWindowing(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i)
	}
	out := rollingStd(values, 4)
	if len(out) != 7 {
		t.Fatalf("len = %d, want 7", len(out))
	}
	// every window of 4 consecutive integers has the same spread
	for _, v := range out {
		if !almostEqual(v, out[0], 1e-12) {
			t.Fatalf("uneven stds: %v", out)
		}
	}
}
