package testutil

import (
	"context"

	"agriguard/provider"
)

// MockProvider implements provider.Provider for testing
type MockProvider struct {
	// Configurable responses
	ChatFunc         func(ctx context.Context, messages []provider.Message, system string) (string, error)
	GenerateFunc     func(ctx context.Context, prompt, system string) (string, error)
	AnalyzeImageFunc func(ctx context.Context, imageB64, prompt string) (string, error)

	name string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(name string) *MockProvider {
	mock := &MockProvider{name: name}
	mock.ChatFunc = mock.defaultChat
	mock.GenerateFunc = mock.defaultGenerate
	mock.AnalyzeImageFunc = mock.defaultAnalyzeImage
	return mock
}

func (m *MockProvider) defaultChat(ctx context.Context, messages []provider.Message, system string) (string, error) {
	return "Mock response", nil
}

func (m *MockProvider) defaultGenerate(ctx context.Context, prompt, system string) (string, error) {
	return "Mock response", nil
}

func (m *MockProvider) defaultAnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	return "Mock image analysis", nil
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Chat(ctx context.Context, messages []provider.Message, system string) (string, error) {
	return m.ChatFunc(ctx, messages, system)
}

func (m *MockProvider) Generate(ctx context.Context, prompt, system string) (string, error) {
	return m.GenerateFunc(ctx, prompt, system)
}

func (m *MockProvider) AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error) {
	return m.AnalyzeImageFunc(ctx, imageB64, prompt)
}
