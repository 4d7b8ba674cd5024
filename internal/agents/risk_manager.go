package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/models"
	"github.com/redreef/alphaflow/internal/risk"
)

// NewRiskManagerNode builds the node that runs the full risk assessment
// over the analyst signals and the price history. A malformed signal set
// fails the run here rather than flowing into the portfolio manager.
func NewRiskManagerNode() *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			assessment, err := risk.Assess(state.Prices, state.Portfolio, state.Signals)
			if err != nil {
				return nil, fmt.Errorf("risk assessment for %s: %w", state.Ticker, err)
			}
			state.Assessment = assessment
			state.Goto = consts.PortfolioManager

			if state.ShowReasoning {
				printAgentReasoning(consts.Agent_RiskManager, assessment)
			}

			log.Info().
				Str("ticker", state.Ticker).
				Int("risk_score", assessment.RiskScore).
				Str("trading_action", assessment.TradingAction).
				Msg("Risk assessment attached")
			return state, nil
		})
}
