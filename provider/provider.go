// Package provider abstracts the AI backends AgriGuard can run on.
//
// The server supports one local backend (Ollama) and three cloud APIs
// (Groq, Gemini, Anthropic) through a common Provider interface, so the
// diagnosis, IPM, and chat services stay backend-agnostic. Which
// backend actually answers a request is decided per call by the Chain,
// which prefers fast cloud inference and falls back to local models:
//
//	Groq (keyed) → Gemini (keyed) → Ollama (reachable) → Groq regardless
//
// An explicit AI_PROVIDER setting pins the first choice instead.
//
// Every implementation exposes the same three capabilities:
//
//   - Chat: multi-turn conversation under a system prompt
//   - Generate: one-shot text generation
//   - AnalyzeImage: vision analysis of a base64-encoded photo
//
// Responses are plain text; the calling service owns any JSON parsing
// of model output. Tests use the func-field mock in provider/testutil.
package provider

import "context"

// Roles used in chat transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation, provider-agnostic.
type Message struct {
	Role    string
	Content string
}

// Provider is the contract every AI backend implements.
type Provider interface {
	// Name identifies the backend ("ollama", "groq", "gemini",
	// "anthropic").
	Name() string

	// Chat continues a multi-turn conversation. The system prompt may
	// be empty; messages are oldest first.
	Chat(ctx context.Context, messages []Message, system string) (string, error)

	// Generate produces text from a single prompt.
	Generate(ctx context.Context, prompt, system string) (string, error)

	// AnalyzeImage describes or diagnoses a base64-encoded JPEG/PNG
	// image according to the prompt.
	AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error)
}
