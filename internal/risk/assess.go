package risk

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/internal/models"
)

// Assess runs the full risk evaluation for one security: metrics, composite
// score, position cap, and constrained action, bundled into a fresh
// RiskAssessment.
//
// Thin price history degrades to NaN metrics and still produces an
// assessment. A structurally broken signal set does not: it returns a
// MalformedSignalError and no assessment.
func Assess(prices []models.PricePoint, pf models.Portfolio, signals map[models.Category]models.AnalystSignal) (*models.RiskAssessment, error) {
	if err := models.ValidateSignals(signals); err != nil {
		return nil, err
	}

	metrics := ComputeMetrics(prices, pf)
	score := Score(metrics, signals)
	latestClose := models.LatestClose(prices)

	assessment := &models.RiskAssessment{
		MaxPositionSize: MaxPositionSize(pf, latestClose, score),
		RiskScore:       score,
		TradingAction:   ResolveAction(score, signals),
		RiskMetrics:     metrics,
		Reasoning: fmt.Sprintf(
			"Risk Score %d/10: Market Risk=%d, Volatility=%.2f%%, VaR=%.2f%%, Max Drawdown=%.2f%%",
			score, metrics.MarketRiskScore,
			metrics.Volatility*100, metrics.ValueAtRisk95*100, metrics.MaxDrawdown*100,
		),
	}

	log.Debug().
		Int("risk_score", score).
		Str("trading_action", assessment.TradingAction).
		Float64("max_position_size", assessment.MaxPositionSize).
		Msg("Risk assessment complete")

	return assessment, nil
}
