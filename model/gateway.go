package model

import (
	"context"

	"agriguard/api"
)

// Gateway is the backend surface the client talks to. It mirrors the
// HTTP API one method per endpoint and adds nothing on top: no
// retries, no caching, no fallbacks. Errors and payloads pass through
// so the UI can decide what to show.
//
// The interface is defined here rather than in the api package so
// tests can script responses without a server.
type Gateway interface {
	// Service status
	Health(ctx context.Context) (*api.Health, error)
	AIStatus(ctx context.Context) (*api.AIStatus, error)

	// Conversation
	SendMessage(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	SendMessageWithImage(ctx context.Context, req api.ChatRequest, imagePath string) (*api.ChatResponse, error)
	ChatIPMStrategy(ctx context.Context, req api.IPMChatRequest) (*api.IPMChatResponse, error)
	ClearSession(ctx context.Context, sessionID string) error

	// Photo diagnosis
	AnalyzeLeaf(ctx context.Context, imagePath, cropType, fieldContext string) (*api.LeafAnalysis, error)
	QuickAnalysis(ctx context.Context, imagePath, question string) (string, error)
	AnalyzeField(ctx context.Context, imageBase64, fieldContext string) (*api.FieldAnalysis, error)

	// Weather
	CurrentWeather(ctx context.Context, lat, lon float64) (*api.CurrentWeather, error)
	WeatherForecast(ctx context.Context, lat, lon float64, days int) (*api.Forecast, error)
	DiseaseRisk(ctx context.Context, lat, lon float64) (*api.DiseaseRisk, error)
	SprayWindows(ctx context.Context, lat, lon float64) (*api.SprayWindows, error)

	// Pest management
	IPMStrategy(ctx context.Context, req api.IPMRequest) (*api.IPMStrategy, error)
	QuickIPM(ctx context.Context, pest, crop string) (*api.QuickRecommendation, error)
	PredictOutbreak(ctx context.Context, crop string, lat, lon float64) (*api.OutbreakForecast, error)
	DiseaseDatabase(ctx context.Context) (*api.DiseaseDatabase, error)
	DiseaseEntry(ctx context.Context, key string) (*api.DiseaseInfo, error)

	// Voice
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

var _ Gateway = (*api.Client)(nil)
