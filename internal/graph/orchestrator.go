// Package graph wires the analysis nodes into the eino state graph:
// START -> market_data -> technical -> fundamentals -> sentiment ->
// valuation -> risk_manager -> portfolio_manager -> END, with every hop
// routed through the Goto the previous node left in the state.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/agents"
	"github.com/redreef/alphaflow/internal/dataflows"
	"github.com/redreef/alphaflow/internal/models"
)

// agentHandOff routes to whatever node the previous one selected.
func agentHandOff(ctx context.Context, input *models.PipelineState) (string, error) {
	if input.Goto == "" {
		return compose.END, nil
	}
	return input.Goto, nil
}

// NewPipelineOrchestrator compiles the analysis graph. genFunc seeds the
// graph-local state; hand it the same state you invoke with so that
// ProcessState writes and the flowing state stay one object.
func NewPipelineOrchestrator(
	ctx context.Context,
	genFunc compose.GenLocalState[*models.PipelineState],
	provider *dataflows.Provider,
	chatModel model.ToolCallingChatModel,
) (compose.Runnable[*models.PipelineState, *models.PipelineState], error) {
	g := compose.NewGraph[*models.PipelineState, *models.PipelineState](
		compose.WithGenLocalState(genFunc),
	)

	outMap := map[string]bool{
		consts.MarketData:          true,
		consts.TechnicalAnalyst:    true,
		consts.FundamentalsAnalyst: true,
		consts.SentimentAnalyst:    true,
		consts.ValuationAnalyst:    true,
		consts.RiskManager:         true,
		consts.PortfolioManager:    true,
		compose.END:                true,
	}

	_ = g.AddLambdaNode(consts.MarketData, agents.NewMarketDataNode(provider), compose.WithNodeName(consts.MarketData))
	_ = g.AddLambdaNode(consts.TechnicalAnalyst, agents.NewTechnicalAnalystNode(), compose.WithNodeName(consts.TechnicalAnalyst))
	_ = g.AddLambdaNode(consts.FundamentalsAnalyst, agents.NewFundamentalsAnalystNode(), compose.WithNodeName(consts.FundamentalsAnalyst))
	_ = g.AddLambdaNode(consts.SentimentAnalyst, agents.NewSentimentAnalystNode(), compose.WithNodeName(consts.SentimentAnalyst))
	_ = g.AddLambdaNode(consts.ValuationAnalyst, agents.NewValuationAnalystNode(), compose.WithNodeName(consts.ValuationAnalyst))
	_ = g.AddLambdaNode(consts.RiskManager, agents.NewRiskManagerNode(), compose.WithNodeName(consts.RiskManager))

	pmGraph := agents.NewPortfolioManagerNode(ctx, chatModel)
	_ = g.AddGraphNode(consts.PortfolioManager, pmGraph, compose.WithNodeName(consts.PortfolioManager))

	_ = g.AddBranch(consts.MarketData, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.TechnicalAnalyst, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.FundamentalsAnalyst, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.SentimentAnalyst, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.ValuationAnalyst, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.RiskManager, compose.NewGraphBranch(agentHandOff, outMap))
	_ = g.AddBranch(consts.PortfolioManager, compose.NewGraphBranch(agentHandOff, outMap))

	_ = g.AddEdge(compose.START, consts.MarketData)

	r, err := g.Compile(ctx,
		compose.WithGraphName("alphaflow-pipeline"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
	if err != nil {
		return nil, fmt.Errorf("compile analysis graph: %w", err)
	}
	return r, nil
}
