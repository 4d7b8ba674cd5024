package risk

import "github.com/redreef/alphaflow/internal/models"

// Trading actions the risk manager can emit. Besides these, the valuation
// signal's raw direction passes through as the action when risk is low.
const (
	ActionHold   = "hold"
	ActionReduce = "reduce"
	ActionBuy    = "buy"
)

// ResolveAction picks the constrained trading action. The rules fire in
// order and the first match wins: extreme risk forces a hold, elevated risk
// forces a reduction, and only below that does a confident bullish technical
// read or the valuation signal get a say.
func ResolveAction(riskScore int, signals map[models.Category]models.AnalystSignal) string {
	switch {
	case riskScore >= 9:
		return ActionHold
	case riskScore >= 7:
		return ActionReduce
	}

	technical := signals[models.CategoryTechnical]
	if technical.Signal == models.SignalBullish && technical.Confidence > 50 {
		return ActionBuy
	}
	return string(signals[models.CategoryValuation].Signal)
}
