// Package agents holds the pipeline nodes: the data loader, the four
// deterministic analysts, the risk manager, and the LLM-backed portfolio
// manager. Each node reads the shared pipeline state, writes its output
// into it, and sets Goto for the orchestrator's branch routing.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/dataflows"
	"github.com/redreef/alphaflow/internal/models"
)

// NewMarketDataNode builds the node that loads price history, fundamentals,
// and news into the state. Price history is mandatory; fundamentals and
// news failures degrade to empty data so the analysts can still run.
func NewMarketDataNode(provider *dataflows.Provider) *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			start, err := time.Parse("2006-01-02", state.StartDate)
			if err != nil {
				return nil, fmt.Errorf("parse start date: %w", err)
			}
			end, err := time.Parse("2006-01-02", state.EndDate)
			if err != nil {
				return nil, fmt.Errorf("parse end date: %w", err)
			}

			prices, err := provider.GetPrices(ctx, state.Ticker, start, end)
			if err != nil {
				return nil, fmt.Errorf("load prices for %s: %w", state.Ticker, err)
			}
			state.Prices = prices

			financials, err := provider.GetFundamentals(ctx, state.Ticker)
			if err != nil {
				log.Warn().Err(err).Str("ticker", state.Ticker).Msg("Fundamentals unavailable")
			} else {
				state.Financials = financials
			}

			news, err := provider.GetNews(ctx, state.Ticker, start, end, state.NumOfNews)
			if err != nil {
				log.Warn().Err(err).Str("ticker", state.Ticker).Msg("News unavailable")
			} else {
				state.News = news
			}

			log.Info().
				Str("ticker", state.Ticker).
				Int("prices", len(state.Prices)).
				Int("news", len(state.News)).
				Msg("Market data loaded")

			state.Goto = consts.TechnicalAnalyst
			return state, nil
		})
}
