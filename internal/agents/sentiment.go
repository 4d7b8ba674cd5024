package agents

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/consts"
	"github.com/redreef/alphaflow/internal/models"
)

var bullishTerms = []string{
	"beat", "beats", "surge", "soar", "rally", "record", "upgrade",
	"outperform", "growth", "profit", "strong", "buyback", "breakthrough",
	"expand", "partnership", "exceeds",
}

var bearishTerms = []string{
	"miss", "misses", "plunge", "slump", "downgrade", "underperform",
	"loss", "lawsuit", "recall", "layoff", "layoffs", "weak", "decline",
	"investigation", "fraud", "bankruptcy", "cuts",
}

// NewSentimentAnalystNode builds the news sentiment analyst. Each headline
// votes by keyword; confidence is the winning share of opinionated
// headlines.
func NewSentimentAnalystNode() *compose.Lambda {
	return compose.InvokableLambdaWithOption(
		func(ctx context.Context, state *models.PipelineState, opts ...any) (*models.PipelineState, error) {
			state.Signals[models.CategorySentiment] = sentimentSignal(state.News)
			state.Goto = consts.ValuationAnalyst
			log.Debug().
				Str("signal", string(state.Signals[models.CategorySentiment].Signal)).
				Int("articles", len(state.News)).
				Msg("Sentiment analysis complete")
			return state, nil
		})
}

func sentimentSignal(news []models.NewsArticle) models.AnalystSignal {
	bullish, bearish := 0, 0
	for _, article := range news {
		text := strings.ToLower(article.Title + " " + article.Summary)
		score := 0
		for _, term := range bullishTerms {
			if strings.Contains(text, term) {
				score++
			}
		}
		for _, term := range bearishTerms {
			if strings.Contains(text, term) {
				score--
			}
		}
		if score > 0 {
			bullish++
		} else if score < 0 {
			bearish++
		}
	}

	opinionated := bullish + bearish
	if opinionated == 0 {
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: 50}
	}

	switch {
	case bullish > bearish:
		return models.AnalystSignal{
			Signal:     models.SignalBullish,
			Confidence: 100 * float64(bullish) / float64(opinionated),
		}
	case bearish > bullish:
		return models.AnalystSignal{
			Signal:     models.SignalBearish,
			Confidence: 100 * float64(bearish) / float64(opinionated),
		}
	default:
		return models.AnalystSignal{Signal: models.SignalNeutral, Confidence: 50}
	}
}
