package server

import (
	"os"
	"testing"
)

var configVars = []string{
	"PORT",
	"OLLAMA_BASE_URL", "OLLAMA_MODEL_VISION", "OLLAMA_MODEL_LLM",
	"GROQ_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "AI_PROVIDER",
	"WEATHER_API_BASE", "DATA_DIR", "CORS_ORIGINS",
}

// clearConfigEnv unsets every config variable. t.Setenv registers the
// restore, the unset makes the test immune to the caller's environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %q, want %q", cfg.OllamaBaseURL, "http://localhost:11434")
	}
	if cfg.OllamaVisionModel != "llava:13b" {
		t.Errorf("OllamaVisionModel = %q, want %q", cfg.OllamaVisionModel, "llava:13b")
	}
	if cfg.OllamaLLMModel != "mistral:7b" {
		t.Errorf("OllamaLLMModel = %q, want %q", cfg.OllamaLLMModel, "mistral:7b")
	}
	if cfg.GroqAPIKey != "" {
		t.Errorf("GroqAPIKey = %q, want empty", cfg.GroqAPIKey)
	}
	if cfg.AIProvider != "groq" {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, "groq")
	}
	if cfg.WeatherAPIBase != "https://api.open-meteo.com/v1" {
		t.Errorf("WeatherAPIBase = %q, want %q", cfg.WeatherAPIBase, "https://api.open-meteo.com/v1")
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "./data")
	}
	if cfg.CORSOrigins != "*" {
		t.Errorf("CORSOrigins = %q, want %q", cfg.CORSOrigins, "*")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.internal:11434")
	t.Setenv("OLLAMA_MODEL_VISION", "llava:34b")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("DATA_DIR", "/var/lib/agriguard")
	t.Setenv("CORS_ORIGINS", "https://farm.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.OllamaBaseURL != "http://ollama.internal:11434" {
		t.Errorf("OllamaBaseURL = %q, want override", cfg.OllamaBaseURL)
	}
	if cfg.OllamaVisionModel != "llava:34b" {
		t.Errorf("OllamaVisionModel = %q, want %q", cfg.OllamaVisionModel, "llava:34b")
	}
	if cfg.GroqAPIKey != "gsk_test" {
		t.Errorf("GroqAPIKey = %q, want %q", cfg.GroqAPIKey, "gsk_test")
	}
	if cfg.AIProvider != "ollama" {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, "ollama")
	}
	if cfg.DataDir != "/var/lib/agriguard" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/var/lib/agriguard")
	}
	if cfg.CORSOrigins != "https://farm.example.com" {
		t.Errorf("CORSOrigins = %q, want %q", cfg.CORSOrigins, "https://farm.example.com")
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected an error for a non-numeric port")
	}
}
