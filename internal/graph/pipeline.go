package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/internal/config"
	"github.com/redreef/alphaflow/internal/dataflows"
	"github.com/redreef/alphaflow/internal/models"
)

// RunParams seeds one pipeline run.
type RunParams struct {
	Ticker        string
	StartDate     string
	EndDate       string
	NumOfNews     int
	Portfolio     models.Portfolio
	ShowReasoning bool
}

// Pipeline runs the full analysis for one security per Propagate call.
type Pipeline struct {
	cfg       *config.Config
	provider  *dataflows.Provider
	chatModel model.ToolCallingChatModel
}

func NewPipeline(cfg *config.Config, provider *dataflows.Provider, chatModel model.ToolCallingChatModel) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		provider:  provider,
		chatModel: chatModel,
	}
}

// Propagate drives one (ticker, window) run through the graph and returns
// the final state with the risk assessment and trading decision attached.
//
// The orchestrator is compiled per run so the graph-local state and the
// state flowing along the edges are the same object.
func (p *Pipeline) Propagate(ctx context.Context, params RunParams) (*models.PipelineState, error) {
	state := models.NewPipelineState(
		params.Ticker, params.StartDate, params.EndDate,
		params.Portfolio, params.NumOfNews, params.ShowReasoning,
	)

	orchestrator, err := NewPipelineOrchestrator(ctx,
		func(ctx context.Context) *models.PipelineState { return state },
		p.provider, p.chatModel,
	)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("ticker", params.Ticker).
		Str("start_date", params.StartDate).
		Str("end_date", params.EndDate).
		Msg("Pipeline run starting")

	result, err := orchestrator.Invoke(ctx, state,
		compose.WithRuntimeMaxSteps(p.cfg.MaxRecurLimit))
	if err != nil {
		return nil, fmt.Errorf("pipeline run for %s: %w", params.Ticker, err)
	}

	if result.Decision == nil {
		return nil, fmt.Errorf("pipeline run for %s produced no decision", params.Ticker)
	}
	return result, nil
}
