package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/roboadvisor/investai/internal/config"
)

// Client wraps a chat model behind the one call the advisor needs: prompt
// in, text out. Temperature is passed per call because the classifier runs
// at zero while the strategies do not.
type Client struct {
	cm model.BaseChatModel
}

// New builds the chat model for the configured provider. Safe for
// concurrent use; the underlying model keeps no per-request state.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	switch cfg.LLMProvider {
	case "openai", "":
		cm, err := openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.ChatModel,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai chat model: %w", err)
		}
		return &Client{cm: cm}, nil
	case "deepseek":
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey: cfg.DeepSeekAPIKey,
			Model:  cfg.ChatModel,
		})
		if err != nil {
			return nil, fmt.Errorf("create deepseek chat model: %w", err)
		}
		return &Client{cm: cm}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}

// Generate runs one completion and returns the trimmed text content.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	msgs := []*schema.Message{schema.UserMessage(prompt)}

	out, err := c.cm.Generate(ctx, msgs, model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	if out == nil {
		return "", fmt.Errorf("chat model returned no message")
	}

	return strings.TrimSpace(out.Content), nil
}
