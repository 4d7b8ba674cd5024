package agents

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/models"
)

// Fundamentals thresholds. Each dimension votes bullish when the business
// clears the bar and bearish when it clearly misses it.
const (
	roeThreshold           = 0.15
	netMarginThreshold     = 0.20
	revenueGrowthThreshold = 0.10
	earningsGrowthBar      = 0.10
	debtToEquityCeiling    = 0.50
	peRatioCeiling         = 25.0
)

// NewFundamentalsAnalystNode builds the business-quality analyst.
func NewFundamentalsAnalystNode() *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			state.Signals[models.CategoryFundamental] = fundamentalsSignal(state.Financials)
			state.Goto = consts.SentimentAnalyst
			log.Debug().
				Str("signal", string(state.Signals[models.CategoryFundamental].Signal)).
				Msg("Fundamentals analysis complete")
			return state, nil
		})
}

func fundamentalsSignal(m models.FinancialMetrics) models.AnalystSignal {
	type check struct {
		bullish bool
		bearish bool
	}

	checks := []check{
		// profitability
		{bullish: m.ReturnOnEquity > roeThreshold, bearish: m.ReturnOnEquity < 0},
		{bullish: m.NetMargin > netMarginThreshold, bearish: m.NetMargin < 0},
		// growth
		{bullish: m.RevenueGrowth > revenueGrowthThreshold, bearish: m.RevenueGrowth < 0},
		{bullish: m.EarningsGrowth > earningsGrowthBar, bearish: m.EarningsGrowth < 0},
		// balance sheet
		{bullish: m.DebtToEquity > 0 && m.DebtToEquity < debtToEquityCeiling, bearish: m.DebtToEquity > 2},
		// price multiple
		{bullish: m.PERatio > 0 && m.PERatio < peRatioCeiling, bearish: m.PERatio > 2*peRatioCeiling},
	}

	bullish, bearish := 0, 0
	for _, c := range checks {
		if c.bullish {
			bullish++
		} else if c.bearish {
			bearish++
		}
	}

	total := len(checks)
	switch {
	case bullish >= total/2+1:
		return models.AnalystSignal{Signal: models.SignalBullish, Confidence: 100 * float64(bullish) / float64(total)}
	case bearish >= total/2+1:
		return models.AnalystSignal{Signal: models.SignalBearish, Confidence: 100 * float64(bearish) / float64(total)}
	default:
		neutral := total - bullish - bearish
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: 100 * float64(neutral) / float64(total)}
	}
}
