package server

import (
	"net/http"

	"agriguard/api"
	"agriguard/provider"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Name      string            `json:"name"`
		Version   string            `json:"version"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
		Message   string            `json:"message"`
	}{
		Name:    "AgriGuard - AI Agronomist",
		Version: "1.0.0",
		Status:  "running",
		Endpoints: map[string]string{
			"docs":     "/docs",
			"analysis": "/analysis",
			"weather":  "/weather",
			"ipm":      "/ipm",
			"chat":     "/chat",
		},
		Message: "🌱 Welcome to AgriGuard! Visit /docs for API documentation.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := map[string]string{
		"ollama": "not_running",
		"groq":   "not_configured",
		"gemini": "not_configured",
	}
	if s.chain.Ollama().Ping(r.Context()) == nil {
		providers["ollama"] = "connected"
	}
	if s.cfg.GroqAPIKey != "" {
		providers["groq"] = "configured"
	}
	if s.cfg.GoogleAPIKey != "" {
		providers["gemini"] = "configured"
	}
	writeJSON(w, http.StatusOK, api.Health{
		Status:      "healthy",
		AIProviders: providers,
	})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := api.AIStatus{
		PrimaryProvider: s.chain.Primary(ctx),
		Ollama: api.OllamaStatus{
			Status:      "not_running",
			Models:      []string{},
			VisionModel: s.cfg.OllamaVisionModel,
			LLMModel:    s.cfg.OllamaLLMModel,
		},
		Groq:   api.ProviderStatus{Status: "not_configured", Model: provider.GroqTextModel},
		Gemini: api.ProviderStatus{Status: "not_configured", Model: provider.GeminiModel},
	}
	if ollama := s.chain.Ollama(); ollama.Ping(ctx) == nil {
		status.Ollama.Status = "connected"
		if models, err := ollama.ListModels(ctx); err == nil {
			status.Ollama.Models = models
		}
	}
	if s.cfg.GroqAPIKey != "" {
		status.Groq.Status = "ready"
	}
	if s.cfg.GoogleAPIKey != "" {
		status.Gemini.Status = "ready"
	}
	writeJSON(w, http.StatusOK, status)
}
