// Package translator runs per-paragraph completion calls against a prompt
// catalog and persists the results. Already-translated (paragraph, prompt)
// pairs are skipped without API calls, so interrupted runs can be resumed.
package translator

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// CompletionRequest carries one completion call.
type CompletionRequest struct {
	System      string
	UserText    string
	Model       string
	Temperature float64
	MaxTokens   int64
}

// Completer produces a completion for a request. Tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// AnthropicCompleter is the production Completer backed by the Anthropic API.
type AnthropicCompleter struct {
	client anthropic.Client
}

// NewAnthropicCompleter creates a Completer using the given API key.
func NewAnthropicCompleter(apiKey string) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Complete sends one completion call and returns the response text.
func (c *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: req.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserText)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return msg.Content[0].Text, nil
}
