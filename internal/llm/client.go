// Package llm constructs the chat model the portfolio manager reasons
// with. Construction is explicit: callers build a model from config and
// pass it down, there is no package-level instance.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/redreef/alphaflow/internal/config"
)

const defaultMaxTokens = 2000

// NewChatModel builds the chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	if err := cfg.RequireLLMCredentials(); err != nil {
		return nil, err
	}

	switch cfg.LLMProvider {
	case config.ProviderDeepSeek:
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     modelOrDefault(cfg.ModelName, "deepseek-chat"),
			BaseURL:   cfg.BackendURL,
			MaxTokens: defaultMaxTokens,
		})
	case config.ProviderOpenAI:
		maxTokens := defaultMaxTokens
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     modelOrDefault(cfg.ModelName, "gpt-4o"),
			BaseURL:   cfg.BackendURL,
			MaxTokens: &maxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}

func modelOrDefault(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
