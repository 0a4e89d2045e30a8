package provider

import (
	"strings"
	"testing"
)

// TestProviderImplementations is a compile-time check that every
// backend satisfies the Provider interface.
func TestProviderImplementations(t *testing.T) {
	var _ Provider = (*OllamaProvider)(nil)
	var _ Provider = (*GroqProvider)(nil)
	var _ Provider = (*GeminiProvider)(nil)
	var _ Provider = (*AnthropicProvider)(nil)
	var _ Provider = (*Chain)(nil)
}

func TestHostedConstructorsRequireKeys(t *testing.T) {
	tests := []struct {
		name    string
		newFunc func() error
	}{
		{"groq", func() error { _, err := NewGroqProvider(""); return err }},
		{"gemini", func() error { _, err := NewGeminiProvider(""); return err }},
		{"anthropic", func() error { _, err := NewAnthropicProvider("", ""); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.newFunc()
			if err == nil {
				t.Fatal("expected error for empty API key, got nil")
			}
			if !strings.Contains(err.Error(), "API key is required") {
				t.Errorf("error = %q, want it to mention the missing key", err)
			}
		})
	}
}

func TestNewOllamaProviderDefaults(t *testing.T) {
	p, err := NewOllamaProvider("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.VisionModel() != DefaultOllamaVisionModel {
		t.Errorf("VisionModel() = %q, want %q", p.VisionModel(), DefaultOllamaVisionModel)
	}
	if p.LLMModel() != DefaultOllamaLLMModel {
		t.Errorf("LLMModel() = %q, want %q", p.LLMModel(), DefaultOllamaLLMModel)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q, want %q", p.Name(), "ollama")
	}
}

func TestNewOllamaProviderRejectsBadURL(t *testing.T) {
	if _, err := NewOllamaProvider("://missing-scheme", "", ""); err == nil {
		t.Error("expected error for malformed base URL")
	}
}

func TestGroqProviderModels(t *testing.T) {
	p, err := NewGroqProvider("gsk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "groq" {
		t.Errorf("Name() = %q, want %q", p.Name(), "groq")
	}
	if p.Model() != GroqTextModel {
		t.Errorf("Model() = %q, want %q", p.Model(), GroqTextModel)
	}
}

func TestAnthropicProviderModelDefault(t *testing.T) {
	p, err := NewAnthropicProvider("sk-test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != string(DefaultAnthropicModel) {
		t.Errorf("Model() = %q, want %q", p.Model(), DefaultAnthropicModel)
	}

	p, err = NewAnthropicProvider("sk-test", "claude-haiku-4-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "claude-haiku-4-5" {
		t.Errorf("Model() = %q, want %q", p.Model(), "claude-haiku-4-5")
	}
}
