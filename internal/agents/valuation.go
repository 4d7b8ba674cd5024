package agents

import (
	"context"
	"math"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/models"
)

// valuationGapThreshold is how far intrinsic value must diverge from market
// cap before the analyst takes a side.
const valuationGapThreshold = 0.15

// NewValuationAnalystNode builds the intrinsic value analyst. It prices the
// trailing earnings with a growth-adjusted Graham multiple and compares the
// result to the market cap.
func NewValuationAnalystNode() *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			state.Signals[models.CategoryValuation] = valuationSignal(state.Financials)
			state.Goto = consts.RiskManager
			log.Debug().
				Str("signal", string(state.Signals[models.CategoryValuation].Signal)).
				Msg("Valuation analysis complete")
			return state, nil
		})
}

func valuationSignal(m models.FinancialMetrics) models.AnalystSignal {
	if m.MarketCap <= 0 || m.PERatio <= 0 {
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: 0}
	}

	earnings := m.MarketCap / m.PERatio

	// Graham multiple: 8.5 for a no-growth business plus twice the growth
	// rate in percent, clamped to keep runaway growth estimates honest.
	growthPct := m.EarningsGrowth * 100
	if growthPct < 0 {
		growthPct = 0
	}
	if growthPct > 25 {
		growthPct = 25
	}
	intrinsic := earnings * (8.5 + 2*growthPct)

	gap := (intrinsic - m.MarketCap) / m.MarketCap
	confidence := math.Min(math.Abs(gap), 1) * 100

	switch {
	case gap > valuationGapThreshold:
		return models.AnalystSignal{Signal: models.SignalBullish, Confidence: confidence}
	case gap < -valuationGapThreshold:
		return models.AnalystSignal{Signal: models.SignalBearish, Confidence: confidence}
	default:
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: confidence}
	}
}
