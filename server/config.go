package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the backend configuration. Environment only; every value
// has a default that works for local development.
type Config struct {
	Port int `env:"PORT" envDefault:"8000"`

	OllamaBaseURL     string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaVisionModel string `env:"OLLAMA_MODEL_VISION" envDefault:"llava:13b"`
	OllamaLLMModel    string `env:"OLLAMA_MODEL_LLM" envDefault:"mistral:7b"`

	GroqAPIKey      string `env:"GROQ_API_KEY"`
	GoogleAPIKey    string `env:"GOOGLE_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AIProvider      string `env:"AI_PROVIDER" envDefault:"groq"`

	WeatherAPIBase string `env:"WEATHER_API_BASE" envDefault:"https://api.open-meteo.com/v1"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	CORSOrigins    string `env:"CORS_ORIGINS" envDefault:"*"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
