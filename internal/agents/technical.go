package agents

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/dataflows"
	"github.com/redreef/alphaflow/internal/models"
)

// NewTechnicalAnalystNode builds the trend-following analyst. It votes
// across moving average posture, RSI, and MACD momentum; confidence is the
// share of indicators agreeing with the majority direction.
func NewTechnicalAnalystNode() *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			state.Signals[models.CategoryTechnical] = technicalSignal(state.Prices)
			state.Goto = consts.FundamentalsAnalyst
			log.Debug().
				Str("signal", string(state.Signals[models.CategoryTechnical].Signal)).
				Float64("confidence", state.Signals[models.CategoryTechnical].Confidence).
				Msg("Technical analysis complete")
			return state, nil
		})
}

func technicalSignal(prices []models.PricePoint) models.AnalystSignal {
	bullish, bearish, total := 0, 0, 0

	if fast, err := dataflows.EMA(prices, 10); err == nil {
		if slow, err := dataflows.SMA(prices, 50); err == nil {
			total++
			if last(fast) > last(slow) {
				bullish++
			} else if last(fast) < last(slow) {
				bearish++
			}
		}
	}

	if rsi, err := dataflows.RSI(prices, 14); err == nil {
		total++
		switch v := last(rsi); {
		case v < 30:
			bullish++ // oversold
		case v > 70:
			bearish++ // overbought
		}
	}

	if macd, err := dataflows.MACD(prices); err == nil {
		total++
		switch h := last(macd.Histogram); {
		case h > 0:
			bullish++
		case h < 0:
			bearish++
		}
	}

	if total == 0 {
		// Not enough history for any indicator.
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: 0}
	}

	signal := models.SignalNeutral
	agree := total - bullish - bearish
	if bullish > bearish && bullish > agree {
		signal = models.SignalBullish
		agree = bullish
	} else if bearish > bullish && bearish > agree {
		signal = models.SignalBearish
		agree = bearish
	}

	return models.AnalystSignal{
		Signal:     signal,
		Confidence: 100 * float64(agree) / float64(total),
	}
}

func last(series []float64) float64 {
	return series[len(series)-1]
}
