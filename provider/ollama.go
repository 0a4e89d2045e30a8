package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// Default Ollama models. llava handles vision, mistral handles text;
// both fit on a mid-range GPU.
const (
	DefaultOllamaVisionModel = "llava:13b"
	DefaultOllamaLLMModel    = "mistral:7b"
	DefaultOllamaBaseURL     = "http://localhost:11434"
)

// Local models are slow without a GPU, so vision gets a generous
// deadline and plain text a shorter one.
const (
	ollamaVisionTimeout = 120 * time.Second
	ollamaTextTimeout   = 60 * time.Second
	ollamaPingTimeout   = 5 * time.Second
)

// OllamaProvider runs against a local Ollama server through the
// official client. It is the only backend that works without an API
// key, which makes it the fallback of last resort in the Chain.
type OllamaProvider struct {
	client      *api.Client
	baseURL     string
	visionModel string
	llmModel    string
}

// NewOllamaProvider creates an Ollama provider.
//
// Empty arguments select the defaults: http://localhost:11434,
// llava:13b for vision, mistral:7b for text. Returns an error only
// when the base URL does not parse; reachability is checked per call.
func NewOllamaProvider(baseURL, visionModel, llmModel string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	if visionModel == "" {
		visionModel = DefaultOllamaVisionModel
	}
	if llmModel == "" {
		llmModel = DefaultOllamaLLMModel
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaProvider{
		client:      api.NewClient(parsedURL, http.DefaultClient),
		baseURL:     baseURL,
		visionModel: visionModel,
		llmModel:    llmModel,
	}, nil
}

// Name implements Provider.Name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// VisionModel returns the configured vision model name.
func (p *OllamaProvider) VisionModel() string {
	return p.visionModel
}

// LLMModel returns the configured text model name.
func (p *OllamaProvider) LLMModel() string {
	return p.llmModel
}

// Ping checks if the Ollama server is reachable by listing its models.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ollamaPingTimeout)
	defer cancel()

	_, err := p.client.List(ctx)
	return err
}

// ListModels returns the names of all models pulled on the server.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, len(resp.Models))
	for i, m := range resp.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Chat implements Provider.Chat against the text model.
func (p *OllamaProvider) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaTextTimeout)
	defer cancel()

	ollamaMessages := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		ollamaMessages = append(ollamaMessages, api.Message{Role: "system", Content: system})
	}
	for _, m := range messages {
		ollamaMessages = append(ollamaMessages, api.Message{Role: m.Role, Content: m.Content})
	}

	req := &api.ChatRequest{
		Model:    p.llmModel,
		Messages: ollamaMessages,
		Stream:   func(b bool) *bool { return &b }(false),
	}

	var sb strings.Builder
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return sb.String(), nil
}

// Generate implements Provider.Generate against the text model.
func (p *OllamaProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaTextTimeout)
	defer cancel()

	req := &api.GenerateRequest{
		Model:  p.llmModel,
		Prompt: prompt,
		System: system,
		Stream: func(b bool) *bool { return &b }(false),
	}

	var sb strings.Builder
	err := p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return sb.String(), nil
}

// AnalyzeImage implements Provider.AnalyzeImage against the vision
// model.
func (p *OllamaProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaVisionTimeout)
	defer cancel()

	// The official client carries images as raw bytes and re-encodes
	// them on the wire.
	imageData, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", fmt.Errorf("invalid image encoding: %w", err)
	}

	req := &api.GenerateRequest{
		Model:  p.visionModel,
		Prompt: prompt,
		Images: []api.ImageData{imageData},
		Stream: func(b bool) *bool { return &b }(false),
	}

	var sb strings.Builder
	err = p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama vision analysis failed: %w", err)
	}
	return sb.String(), nil
}
