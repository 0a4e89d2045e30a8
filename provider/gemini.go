package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	GeminiModel   = "gemini-2.0-flash"
)

// GeminiProvider talks to Google's Generative Language REST API. There
// is no official Go SDK dependency here: the generateContent endpoint
// is a single POST, so a typed HTTP client covers everything we use.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewGeminiProvider creates a Gemini provider. The API key is required.
func NewGeminiProvider(apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: GeminiBaseURL,
		model:   GeminiModel,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Name implements Provider.Name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the Gemini model name.
func (p *GeminiProvider) Model() string {
	return p.model
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Chat implements Provider.Chat. Gemini names the assistant role
// "model" and takes the system prompt out of band.
func (p *GeminiProvider) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	req := geminiRequest{Contents: contents}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	return p.generateContent(ctx, req)
}

// Generate implements Provider.Generate. The system prompt is folded
// into the prompt text the way single-shot calls do everywhere else.
func (p *GeminiProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	return p.generateContent(ctx, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: full}}}},
	})
}

// AnalyzeImage implements Provider.AnalyzeImage with an inline_data
// part next to the prompt.
func (p *GeminiProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	return p.generateContent(ctx, geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageB64}},
			},
		}},
	})
}

func (p *GeminiProvider) generateContent(ctx context.Context, payload geminiRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, msg)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
