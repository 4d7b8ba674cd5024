package risk

import "github.com/redreef/alphaflow/internal/models"

const basePositionFraction = 0.25

// MaxPositionSize caps the tradable exposure at a quarter of total portfolio
// value, halved at risk score 4+ and trimmed to three quarters at 2+. These
// bands are intentionally distinct from the 9/7 bands ResolveAction uses.
func MaxPositionSize(pf models.Portfolio, latestClose float64, riskScore int) float64 {
	base := pf.TotalValue(latestClose) * basePositionFraction
	switch {
	case riskScore >= 4:
		return base * 0.5
	case riskScore >= 2:
		return base * 0.75
	default:
		return base
	}
}
