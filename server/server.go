// Package server exposes the AgriGuard backend over HTTP. Routes emit
// the wire shapes defined in the api package; failures leave as a
// {status, message, hint} error envelope regardless of which layer
// they came from.
package server

import (
	"net/http"

	"agriguard/agronomist"
	"agriguard/diagnosis"
	"agriguard/ipm"
	"agriguard/provider"
	"agriguard/weather"
)

// Server holds the routes' dependencies.
type Server struct {
	cfg        *Config
	chain      *provider.Chain
	weather    *weather.Client
	diagnosis  *diagnosis.Service
	ipm        *ipm.Service
	agronomist *agronomist.Service
}

// Deps contains everything required to construct a Server.
type Deps struct {
	Cfg        *Config
	Chain      *provider.Chain
	Weather    *weather.Client
	Diagnosis  *diagnosis.Service
	IPM        *ipm.Service
	Agronomist *agronomist.Service
}

// New creates a Server from the provided dependencies.
func New(deps Deps) *Server {
	return &Server{
		cfg:        deps.Cfg,
		chain:      deps.Chain,
		weather:    deps.Weather,
		diagnosis:  deps.Diagnosis,
		ipm:        deps.IPM,
		agronomist: deps.Agronomist,
	}
}

// Routes builds the full handler tree with middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ai-status", s.handleAIStatus)

	mux.HandleFunc("POST /chat/message", s.handleChatMessage)
	mux.HandleFunc("POST /chat/message/upload", s.handleChatUpload)
	mux.HandleFunc("POST /chat/ipm-strategy", s.handleChatIPMStrategy)
	mux.HandleFunc("GET /chat/session/{id}", s.handleSessionInfo)
	mux.HandleFunc("DELETE /chat/session/{id}", s.handleSessionClear)

	mux.HandleFunc("POST /analysis/leaf", s.handleAnalyzeLeaf)
	mux.HandleFunc("POST /analysis/leaf/upload", s.handleAnalyzeLeafUpload)
	mux.HandleFunc("POST /analysis/field", s.handleAnalyzeField)
	mux.HandleFunc("POST /analysis/quick", s.handleQuickAnalysis)

	mux.HandleFunc("GET /weather/current", s.handleCurrentWeather)
	mux.HandleFunc("GET /weather/forecast", s.handleForecast)
	mux.HandleFunc("GET /weather/disease-risk", s.handleDiseaseRisk)
	mux.HandleFunc("GET /weather/spray-windows", s.handleSprayWindows)

	mux.HandleFunc("POST /ipm/strategy", s.handleIPMStrategy)
	mux.HandleFunc("GET /ipm/quick/{disease}", s.handleQuickIPM)
	mux.HandleFunc("GET /ipm/predict-outbreak", s.handlePredictOutbreak)
	mux.HandleFunc("GET /ipm/database", s.handleDiseaseDatabase)
	mux.HandleFunc("GET /ipm/database/{key}", s.handleDiseaseEntry)

	mux.HandleFunc("POST /voice/transcribe", s.handleTranscribe)

	return Chain(mux, Recover(), Logging(), CORS(s.cfg.CORSOrigins))
}
