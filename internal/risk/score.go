package risk

import (
	"math"

	"github.com/redreef/alphaflow/internal/models"
)

const (
	maxRiskScore           = 10
	lowConfidenceThreshold = 30
	divergenceBonus        = 2
	lowConfidenceBonus     = 2
)

// Score combines the market risk score with two signal-quality penalties:
// any analyst below 30 confidence, and directional divergence across the
// four categories. Divergence means exactly 3 distinct directions among the
// 4 signals; full agreement, a 2-way split, or (impossibly, with three
// directions) a 4-way split add nothing. Capped at 10.
func Score(metrics models.RiskMetrics, signals map[models.Category]models.AnalystSignal) int {
	score := float64(metrics.MarketRiskScore)

	for _, sig := range signals {
		if sig.Confidence < lowConfidenceThreshold {
			score += lowConfidenceBonus
			break
		}
	}

	distinct := make(map[models.Signal]struct{}, 3)
	for _, sig := range signals {
		distinct[sig.Signal] = struct{}{}
	}
	if len(distinct) == 3 {
		score += divergenceBonus
	}

	// The components are integral today; rounding guards future fractional
	// inputs before the cap.
	rounded := int(math.Round(score))
	if rounded > maxRiskScore {
		return maxRiskScore
	}
	return rounded
}
