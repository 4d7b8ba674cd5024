package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/models"
)

const portfolioManagerSystemPrompt = `You are a portfolio manager making final trading decisions.
Your job is to make a trading decision based on the team's analysis while strictly adhering
to risk management constraints.

RISK MANAGEMENT CONSTRAINTS:
- You MUST NOT exceed the max_position_size specified by the risk manager
- You MUST follow the trading_action (buy/sell/hold) recommended by risk management
- These are hard constraints that cannot be overridden by other signals

When weighing the different signals for direction and timing:
1. Valuation Analysis (35% weight)
   - Primary driver of fair value assessment
   - Determines if price offers good entry/exit point

2. Fundamental Analysis (30% weight)
   - Business quality and growth assessment
   - Determines conviction in long-term potential

3. Technical Analysis (25% weight)
   - Secondary confirmation
   - Helps with entry/exit timing

4. Sentiment Analysis (10% weight)
   - Final consideration
   - Can influence sizing within risk limits

The decision process should be:
1. First check risk management constraints
2. Then evaluate valuation signal
3. Then evaluate fundamentals signal
4. Use technical analysis for timing
5. Consider sentiment for final adjustment

Provide the following in your output:
- "action": "buy" | "sell" | "hold"
- "quantity": <positive integer>
- "confidence": <float between 0 and 100>
- "agent_signals": <list of agent signals including agent name, signal (bullish | bearish | neutral), and their confidence>
- "reasoning": <concise explanation of the decision including how you weighted the signals>

Trading Rules:
- Never exceed risk management position limits
- Only buy if you have available cash
- Only sell if you have shares to sell
- Quantity must be <= current position for sells
- Quantity must be <= max_position_size from risk management`

// NewPortfolioManagerNode builds the LLM subgraph making the final call:
// a loader that renders the team's analysis into messages, the chat model,
// and a router that parses the decision back into the state.
func NewPortfolioManagerNode(ctx context.Context, chatModel model.ToolCallingChatModel) *compose.Graph[*models.PipelineState, *models.PipelineState] {
	g := compose.NewGraph[*models.PipelineState, *models.PipelineState]()

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(loadPortfolioManagerMessages))
	_ = g.AddChatModelNode("agent", chatModel)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(portfolioManagerRouter))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g
}

func analystDisplayName(cat models.Category) string {
	switch cat {
	case models.CategoryTechnical:
		return consts.Agent_TechnicalAnalyst
	case models.CategoryFundamental:
		return consts.Agent_FundamentalsAnalyst
	case models.CategorySentiment:
		return consts.Agent_SentimentAnalyst
	case models.CategoryValuation:
		return consts.Agent_ValuationAnalyst
	default:
		return string(cat)
	}
}

func loadPortfolioManagerMessages(ctx context.Context, state *models.PipelineState, opts ...any) ([]*schema.Message, error) {
	signalLines := make([]string, 0, len(models.Categories))
	for _, cat := range models.Categories {
		sig := state.Signals[cat]
		signalLines = append(signalLines, fmt.Sprintf(
			"%s Trading Signal: {\"signal\": %q, \"confidence\": %.1f}",
			analystDisplayName(cat), sig.Signal, sig.Confidence))
	}

	assessment, err := json.Marshal(state.Assessment)
	if err != nil {
		return nil, fmt.Errorf("serialize risk assessment: %w", err)
	}

	userMessage := fmt.Sprintf(`Based on the team's analysis below, make your trading decision.

%s
Risk Management Trading Signal: %s

Here is the current portfolio:
Portfolio:
Cash: %.2f
Current Position: %d shares

Only include the action, quantity, reasoning, confidence, and agent_signals in your output as JSON. Do not include any JSON markdown.

Remember, the action must be either buy, sell, or hold.
You can only buy if you have available cash.
You can only sell if you have shares in the portfolio to sell.`,
		strings.Join(signalLines, "\n"), assessment,
		state.Portfolio.Cash, state.Portfolio.Stock)

	return []*schema.Message{
		schema.SystemMessage(portfolioManagerSystemPrompt),
		schema.UserMessage(userMessage),
	}, nil
}

func portfolioManagerRouter(ctx context.Context, input *schema.Message, opts ...any) (*models.PipelineState, error) {
	decision, err := models.ParseTradingDecision([]byte(stripCodeFences(input.Content)))
	if err != nil {
		return nil, fmt.Errorf("portfolio manager returned an unusable decision: %w", err)
	}

	var out *models.PipelineState
	err = compose.ProcessState[*models.PipelineState](ctx, func(_ context.Context, state *models.PipelineState) error {
		state.Decision = decision
		state.Goto = compose.END
		if state.ShowReasoning {
			printAgentReasoning(consts.Agent_PortfolioManager, decision)
		}
		out = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("action", decision.Action).
		Int64("quantity", decision.Quantity).
		Float64("confidence", decision.Confidence).
		Msg("Trading decision made")
	return out, nil
}

// stripCodeFences unwraps a fenced completion. Models fence JSON despite
// instructions often enough that rejecting the fence would fail good
// decisions.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
