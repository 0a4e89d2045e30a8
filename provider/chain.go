package provider

import (
	"context"
	"fmt"
)

// ChainConfig carries credentials and endpoints for every backend the
// chain can route to. An empty API key leaves that backend out.
type ChainConfig struct {
	GroqAPIKey      string
	GoogleAPIKey    string
	AnthropicAPIKey string

	OllamaBaseURL     string
	OllamaVisionModel string
	OllamaLLMModel    string

	// Pinned forces one backend by name ("groq", "gemini",
	// "anthropic", "ollama"). When the pinned backend is not
	// configured the chain falls back to the availability order.
	Pinned string
}

// Chain routes each call to the best available backend: Groq when
// keyed, then Gemini when keyed, then a reachable local Ollama. The
// choice is re-evaluated per call so a local daemon coming up or
// going down changes routing without a restart.
type Chain struct {
	groq      *GroqProvider
	gemini    *GeminiProvider
	anthropic *AnthropicProvider
	ollama    *OllamaProvider
	pinned    string
}

// NewChain builds the chain from whatever backends the config enables.
// Ollama is always constructed; whether it participates depends on a
// reachability check at call time.
func NewChain(cfg ChainConfig) (*Chain, error) {
	c := &Chain{pinned: cfg.Pinned}

	if cfg.GroqAPIKey != "" {
		groq, err := NewGroqProvider(cfg.GroqAPIKey)
		if err != nil {
			return nil, err
		}
		c.groq = groq
	}
	if cfg.GoogleAPIKey != "" {
		gemini, err := NewGeminiProvider(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		c.gemini = gemini
	}
	if cfg.AnthropicAPIKey != "" {
		anthropic, err := NewAnthropicProvider(cfg.AnthropicAPIKey, "")
		if err != nil {
			return nil, err
		}
		c.anthropic = anthropic
	}

	ollama, err := NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaVisionModel, cfg.OllamaLLMModel)
	if err != nil {
		return nil, err
	}
	c.ollama = ollama

	return c, nil
}

// Groq returns the Groq backend, or nil when no key is configured.
func (c *Chain) Groq() *GroqProvider { return c.groq }

// Gemini returns the Gemini backend, or nil when no key is configured.
func (c *Chain) Gemini() *GeminiProvider { return c.gemini }

// Anthropic returns the Anthropic backend, or nil when no key is configured.
func (c *Chain) Anthropic() *AnthropicProvider { return c.anthropic }

// Ollama returns the local Ollama backend.
func (c *Chain) Ollama() *OllamaProvider { return c.ollama }

// Primary reports which backend a call made right now would use, or
// "none" when nothing is configured or reachable. It mirrors pick
// except that an unreachable Ollama last resort reads as "none".
func (c *Chain) Primary(ctx context.Context) string {
	switch c.pinned {
	case "groq":
		if c.groq != nil {
			return "groq"
		}
	case "gemini":
		if c.gemini != nil {
			return "gemini"
		}
	case "anthropic":
		if c.anthropic != nil {
			return "anthropic"
		}
	case "ollama":
		if c.ollama != nil && c.ollama.Ping(ctx) == nil {
			return "ollama"
		}
	}

	if c.groq != nil {
		return "groq"
	}
	if c.gemini != nil {
		return "gemini"
	}
	if c.ollama != nil && c.ollama.Ping(ctx) == nil {
		return "ollama"
	}
	return "none"
}

func (c *Chain) pick(ctx context.Context) (Provider, error) {
	switch c.pinned {
	case "groq":
		if c.groq != nil {
			return c.groq, nil
		}
	case "gemini":
		if c.gemini != nil {
			return c.gemini, nil
		}
	case "anthropic":
		if c.anthropic != nil {
			return c.anthropic, nil
		}
	case "ollama":
		if c.ollama != nil {
			return c.ollama, nil
		}
	}

	if c.groq != nil {
		return c.groq, nil
	}
	if c.gemini != nil {
		return c.gemini, nil
	}
	if c.ollama != nil && c.ollama.Ping(ctx) == nil {
		return c.ollama, nil
	}
	if c.ollama != nil {
		return c.ollama, nil
	}

	return nil, fmt.Errorf("no AI provider is configured or reachable")
}

// Name implements Provider.Name.
func (c *Chain) Name() string {
	return "auto"
}

// Chat implements Provider.Chat on the selected backend.
func (c *Chain) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	p, err := c.pick(ctx)
	if err != nil {
		return "", err
	}
	return p.Chat(ctx, messages, system)
}

// Generate implements Provider.Generate on the selected backend.
func (c *Chain) Generate(ctx context.Context, prompt, system string) (string, error) {
	p, err := c.pick(ctx)
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, prompt, system)
}

// AnalyzeImage implements Provider.AnalyzeImage on the selected backend.
func (c *Chain) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	p, err := c.pick(ctx)
	if err != nil {
		return "", err
	}
	return p.AnalyzeImage(ctx, imageB64, prompt)
}
