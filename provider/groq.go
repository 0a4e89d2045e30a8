package provider

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Groq serves OpenAI-compatible endpoints, so the official OpenAI SDK
// drives it with a swapped base URL.
const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqTextModel    = "llama-3.3-70b-versatile"
	GroqVisionModel  = "llama-3.2-90b-vision-preview"
	GroqWhisperModel = "whisper-large-v3"
)

const (
	groqChatTimeout   = 30 * time.Second
	groqVisionTimeout = 60 * time.Second
)

// GroqProvider talks to Groq's cloud inference API. It is the
// preferred backend when keyed: the free tier is fast enough for
// interactive chat, and it also hosts the Whisper model used for voice
// transcription.
type GroqProvider struct {
	client      openai.Client
	model       string
	visionModel string
}

// NewGroqProvider creates a Groq provider. The API key is required.
func NewGroqProvider(apiKey string) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}

	client := openai.NewClient(
		option.WithBaseURL(GroqBaseURL),
		option.WithAPIKey(apiKey),
	)

	return &GroqProvider{
		client:      client,
		model:       GroqTextModel,
		visionModel: GroqVisionModel,
	}, nil
}

// Name implements Provider.Name.
func (p *GroqProvider) Name() string {
	return "groq"
}

// Model returns the text model name.
func (p *GroqProvider) Model() string {
	return p.model
}

// Chat implements Provider.Chat.
func (p *GroqProvider) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, groqChatTimeout)
	defer cancel()

	groqMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		groqMessages = append(groqMessages, openai.SystemMessage(system))
	}
	for _, m := range messages {
		if m.Role == RoleAssistant {
			groqMessages = append(groqMessages, openai.AssistantMessage(m.Content))
		} else {
			groqMessages = append(groqMessages, openai.UserMessage(m.Content))
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    groqMessages,
		Model:       openai.ChatModel(p.model),
		MaxTokens:   openai.Int(2048),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("groq chat failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Generate implements Provider.Generate as a single-turn chat.
func (p *GroqProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, system)
}

// AnalyzeImage implements Provider.AnalyzeImage using Groq's vision
// model. The image travels as a data URI content part.
func (p *GroqProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, groqVisionTimeout)
	defer cancel()

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + imageB64,
		}),
		openai.TextContentPart(prompt),
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		Model:     openai.ChatModel(p.visionModel),
		MaxTokens: openai.Int(2048),
	})
	if err != nil {
		return "", fmt.Errorf("groq vision analysis failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Transcribe converts recorded speech to text with Groq's hosted
// Whisper model. The language hint is a UI code like "hi-IN"; Whisper
// wants the bare ISO 639-1 subtag, so the region is dropped.
func (p *GroqProvider) Transcribe(ctx context.Context, audio io.Reader, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, groqVisionTimeout)
	defer cancel()

	params := openai.AudioTranscriptionNewParams{
		File:  audio,
		Model: openai.AudioModel(GroqWhisperModel),
	}
	if language != "" {
		base, _, _ := strings.Cut(language, "-")
		params.Language = openai.String(strings.ToLower(base))
	}

	transcription, err := p.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("groq transcription failed: %w", err)
	}

	return transcription.Text, nil
}
