package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is specified.
const DefaultAnthropicModel = anthropic.ModelClaudeSonnet4_5_20250929

// AnthropicProvider implements Provider using the official Anthropic
// SDK. It is opt-in: the chain only routes here when AI_PROVIDER
// pins it explicitly.
type AnthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider creates an Anthropic provider. The API key is
// required; an empty model falls back to DefaultAnthropicModel.
func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	resolved := DefaultAnthropicModel
	if model != "" {
		resolved = anthropic.Model(model)
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicProvider{
		client: &client,
		model:  resolved,
	}, nil
}

// Name implements Provider.Name.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns the configured model name.
func (p *AnthropicProvider) Model() string {
	return string(p.model)
}

// Chat implements Provider.Chat. The system prompt rides in the
// dedicated System field rather than the message list.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 2048,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic chat failed: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("anthropic returned no content")
	}

	return message.Content[0].Text, nil
}

// Generate implements Provider.Generate as a single-turn chat.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, system)
}

// AnalyzeImage implements Provider.AnalyzeImage with a base64 image
// block ahead of the prompt text.
func (p *AnthropicProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/jpeg", imageB64),
				anthropic.NewTextBlock(prompt),
			),
		},
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic vision analysis failed: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("anthropic returned no content")
	}

	return message.Content[0].Text, nil
}
