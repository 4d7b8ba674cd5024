// Package risk scores market risk for one security and derives the position
// cap and constrained trading action from it.
package risk

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/internal/models"
)

const (
	// trailing window for the historical volatility distribution
	volatilityWindow = 120
	// trailing window for the drawdown peak
	drawdownWindow = 60
)

// declines applied per stress scenario.
var stressScenarios = map[string]float64{
	models.ScenarioMarketCrash:     -0.20,
	models.ScenarioModerateDecline: -0.10,
	models.ScenarioSlightDecline:   -0.05,
}

// ComputeMetrics derives volatility, VaR, drawdown, the bucketed market risk
// score, and the stress table from the price series and portfolio snapshot.
//
// Thin history never fails the run: any metric whose window cannot be filled
// comes back NaN, the bucket comparisons against NaN are false, and the
// score contribution is zero. NaN means risk unknown, not risk zero.
func ComputeMetrics(prices []models.PricePoint, pf models.Portfolio) models.RiskMetrics {
	closes := models.Closes(prices)
	returns := dailyReturns(closes)

	volatility := sampleStd(returns) * sqrt252
	volPercentile := volatilityPercentile(returns, volatility)
	var95 := quantile(returns, 0.05)
	maxDrawdown := worstDrawdown(closes)

	score := 0
	switch {
	case volPercentile > 1.5:
		score += 2
	case volPercentile > 1.0:
		score++
	}
	switch {
	case var95 < -0.03:
		score += 2
	case var95 < -0.02:
		score++
	}
	switch {
	case maxDrawdown < -0.20:
		score += 2
	case maxDrawdown < -0.10:
		score++
	}

	metrics := models.RiskMetrics{
		Volatility:        volatility,
		ValueAtRisk95:     var95,
		MaxDrawdown:       maxDrawdown,
		MarketRiskScore:   score,
		StressTestResults: stressTest(pf, models.LatestClose(prices)),
	}

	log.Debug().
		Int("price_points", len(prices)).
		Float64("volatility", volatility).
		Float64("var_95", var95).
		Float64("max_drawdown", maxDrawdown).
		Int("market_risk_score", score).
		Msg("Risk metrics computed")

	return metrics
}

// volatilityPercentile is the z-score of the overall annualized volatility
// against a trailing 120-point rolling volatility distribution. With fewer
// than 120 returns the distribution is empty and the z-score is NaN.
func volatilityPercentile(returns []float64, volatility float64) float64 {
	rolling := rollingStd(returns, volatilityWindow)
	for i := range rolling {
		rolling[i] *= sqrt252
	}
	return (volatility - mean(rolling)) / sampleStd(rolling)
}

// worstDrawdown is the most negative close/rollingPeak-1 across the series,
// with the peak taken over a 60-point trailing window.
func worstDrawdown(closes []float64) float64 {
	peaks := rollingMax(closes, drawdownWindow)
	if len(peaks) == 0 {
		return math.NaN()
	}
	worst := math.Inf(1)
	offset := drawdownWindow - 1
	for i, peak := range peaks {
		dd := closes[offset+i]/peak - 1
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// stressTest projects each decline scenario onto the current position. A
// valueless portfolio yields NaN impacts, never a division panic.
func stressTest(pf models.Portfolio, latestClose float64) map[string]models.StressTestResult {
	stockValue := float64(pf.Stock) * latestClose
	totalValue := pf.Cash + stockValue

	results := make(map[string]models.StressTestResult, len(stressScenarios))
	for scenario, decline := range stressScenarios {
		loss := stockValue * decline
		impact := math.NaN()
		if totalValue != 0 {
			impact = loss / totalValue
		}
		results[scenario] = models.StressTestResult{
			PotentialLoss:   loss,
			PortfolioImpact: impact,
		}
	}
	return results
}
