package risk

import (
	"fmt"
	"math"
	"testing"

	"github.com/redreef/alphaflow/internal/models"
)

// pricesFromReturns builds a chronological close series starting at 100.
func pricesFromReturns(returns []float64) []models.PricePoint {
	prices := make([]models.PricePoint, 0, len(returns)+1)
	close := 100.0
	prices = append(prices, pricePoint(0, close))
	for i, r := range returns {
		close *= 1 + r
		prices = append(prices, pricePoint(i+1, close))
	}
	return prices
}

func pricePoint(i int, close float64) models.PricePoint {
	return models.PricePoint{
		Date:   fmt.Sprintf("2024-%02d-%02d", 1+i/28, 1+i%28),
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 1000,
	}
}

func repeatReturns(pattern []float64, n int) []float64 {
	out := make([]float64, 0, n)
	for len(out) < n {
		out = append(out, pattern[len(out)%len(pattern)])
	}
	return out
}

var flatPortfolio = models.Portfolio{Cash: 50000, Stock: 0}

func TestComputeMetricsInsufficientHistory(t *testing.T) {
	for _, n := range []int{0, 1} {
		prices := make([]models.PricePoint, 0, n)
		for i := 0; i < n; i++ {
			prices = append(prices, pricePoint(i, 100))
		}
		m := ComputeMetrics(prices, flatPortfolio)
		if !math.IsNaN(m.Volatility) || !math.IsNaN(m.ValueAtRisk95) || !math.IsNaN(m.MaxDrawdown) {
			t.Errorf("n=%d: metrics must be NaN, got %+v", n, m)
		}
		if m.MarketRiskScore != 0 {
			t.Errorf("n=%d: unknown risk must score 0, got %d", n, m.MarketRiskScore)
		}
		if len(m.StressTestResults) != 3 {
			t.Errorf("n=%d: stress table must still be produced", n)
		}
	}
}

func TestComputeMetricsVaRBucket(t *testing.T) {
	// One -4% day in ten; the 5th percentile of the return distribution is
	// -0.04, deep enough for the full VaR contribution. Each dip recovers
	// quickly so the 60-point drawdown stays shallow, and with fewer than
	// 120 returns the volatility percentile is undefined and contributes 0.
	returns := repeatReturns([]float64{-0.04, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}, 99)
	m := ComputeMetrics(pricesFromReturns(returns), flatPortfolio)

	if m.ValueAtRisk95 >= -0.03 {
		t.Fatalf("var95 = %v, want < -0.03", m.ValueAtRisk95)
	}
	if m.MaxDrawdown < -0.10 {
		t.Fatalf("drawdown = %v, expected shallower than -0.10", m.MaxDrawdown)
	}
	if m.MarketRiskScore != 2 {
		t.Fatalf("score = %d, want 2 (VaR bucket only)", m.MarketRiskScore)
	}
}

func TestComputeMetricsDrawdownBucket(t *testing.T) {
	// Flat for 60 points, then a slow 1%-a-day slide: the trailing peak
	// stays at the plateau and the trough lands between -10% and -20%.
	returns := make([]float64, 0, 78)
	for i := 0; i < 59; i++ {
		returns = append(returns, 0)
	}
	for i := 0; i < 19; i++ {
		returns = append(returns, -0.01)
	}
	m := ComputeMetrics(pricesFromReturns(returns), flatPortfolio)

	if m.MaxDrawdown >= -0.10 || m.MaxDrawdown < -0.20 {
		t.Fatalf("drawdown = %v, want in [-0.20, -0.10)", m.MaxDrawdown)
	}
	if m.ValueAtRisk95 < -0.02 {
		t.Fatalf("var95 = %v, drifted into the VaR bucket", m.ValueAtRisk95)
	}
	if m.MarketRiskScore != 1 {
		t.Fatalf("score = %d, want 1 (moderate drawdown only)", m.MarketRiskScore)
	}
}

func TestComputeMetricsMonotoneInVolatility(t *testing.T) {
	calm := ComputeMetrics(pricesFromReturns(repeatReturns([]float64{0.005, -0.005}, 200)), flatPortfolio)
	wild := ComputeMetrics(pricesFromReturns(repeatReturns([]float64{0.04, -0.04}, 200)), flatPortfolio)

	if wild.Volatility <= calm.Volatility {
		t.Fatalf("wild vol %v not above calm vol %v", wild.Volatility, calm.Volatility)
	}
	if wild.MarketRiskScore < calm.MarketRiskScore {
		t.Fatalf("score dropped with volatility: calm=%d wild=%d", calm.MarketRiskScore, wild.MarketRiskScore)
	}
}

func TestStressTestImpacts(t *testing.T) {
	pf := models.Portfolio{Cash: 50000, Stock: 1000}
	prices := []models.PricePoint{pricePoint(0, 49), pricePoint(1, 50)}
	m := ComputeMetrics(prices, pf)

	crash, ok := m.StressTestResults[models.ScenarioMarketCrash]
	if !ok {
		t.Fatal("market_crash scenario missing")
	}
	if !almostEqual(crash.PotentialLoss, -10000, 1e-9) {
		t.Errorf("crash loss = %v, want -10000", crash.PotentialLoss)
	}
	if !almostEqual(crash.PortfolioImpact, -0.10, 1e-12) {
		t.Errorf("crash impact = %v, want -0.10", crash.PortfolioImpact)
	}

	slight := m.StressTestResults[models.ScenarioSlightDecline]
	if !almostEqual(slight.PotentialLoss, -2500, 1e-9) || !almostEqual(slight.PortfolioImpact, -0.025, 1e-12) {
		t.Errorf("slight decline = %+v", slight)
	}
}

func TestStressTestZeroPortfolio(t *testing.T) {
	m := ComputeMetrics(nil, models.Portfolio{})
	for name, res := range m.StressTestResults {
		if res.PotentialLoss != 0 {
			t.Errorf("%s: loss = %v, want 0", name, res.PotentialLoss)
		}
		if !math.IsNaN(res.PortfolioImpact) {
			t.Errorf("%s: impact = %v, want NaN for valueless portfolio", name, res.PortfolioImpact)
		}
	}
}
