package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leaf.jpg")
	if err := os.WriteFile(path, []byte("not a real jpeg"), 0600); err != nil {
		t.Fatalf("failed to write temp image: %v", err)
	}
	return path
}

func TestNewClientDefaults(t *testing.T) {
	if got := NewClient("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := NewClient("http://farm.example:9000/").BaseURL(); got != "http://farm.example:9000" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", got)
	}
}

func TestSendMessage(t *testing.T) {
	var received ChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/message" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Status:    "success",
			SessionID: "abc123",
			Message:   "hi there",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.SendMessage(context.Background(), ChatRequest{
		Message:  "hello",
		Language: "en-US",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if received.Message != "hello" || received.Language != "en-US" {
		t.Errorf("request body = %+v, want message/language set", received)
	}
	if received.SessionID != "" {
		t.Errorf("session_id should be omitted on first send, got %q", received.SessionID)
	}
	if resp.SessionID != "abc123" || resp.Message != "hi there" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSendMessageCarriesSessionAndLocation(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(ChatResponse{Status: "success", SessionID: "abc123"})
	}))
	defer srv.Close()

	lat, lon := 12.97, 77.59
	_, err := NewClient(srv.URL).SendMessage(context.Background(), ChatRequest{
		Message:   "how humid is it",
		SessionID: "abc123",
		Latitude:  &lat,
		Longitude: &lon,
		CropType:  "tomato",
		Language:  "hi-IN",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if received["session_id"] != "abc123" {
		t.Errorf("session_id = %v, want abc123", received["session_id"])
	}
	if received["latitude"] != 12.97 || received["longitude"] != 77.59 {
		t.Errorf("coordinates = %v, %v", received["latitude"], received["longitude"])
	}
	if received["crop_type"] != "tomato" {
		t.Errorf("crop_type = %v", received["crop_type"])
	}
}

func TestSendMessageWithImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/message/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("message"); got != "what is this spot" {
			t.Errorf("message field = %q", got)
		}
		if got := r.FormValue("language"); got != "es-ES" {
			t.Errorf("language field = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		file.Close()
		if header.Filename != "leaf.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}

		json.NewEncoder(w).Encode(ChatResponse{
			Status:    "success",
			SessionID: "abc123",
			Message:   "looks like early blight",
			Analysis: &LeafAnalysis{
				DiseaseDetected: true,
				DiseaseName:     "Early Blight",
				Confidence:      0.92,
				UrgencyLevel:    "high",
			},
			ActionsAvailable: []Action{{Action: "get_ipm_strategy", Label: "Get Treatment Plan"}},
		})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).SendMessageWithImage(context.Background(), ChatRequest{
		Message:  "what is this spot",
		Language: "es-ES",
	}, writeTempImage(t))
	if err != nil {
		t.Fatalf("SendMessageWithImage failed: %v", err)
	}

	if resp.Analysis == nil || resp.Analysis.DiseaseName != "Early Blight" {
		t.Errorf("analysis = %+v", resp.Analysis)
	}
	if len(resp.ActionsAvailable) != 1 || resp.ActionsAvailable[0].Action != "get_ipm_strategy" {
		t.Errorf("actions = %+v", resp.ActionsAvailable)
	}
}

func TestCurrentWeatherQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("latitude") != "12.97" || query.Get("longitude") != "77.59" {
			t.Errorf("query = %v", query)
		}
		json.NewEncoder(w).Encode(CurrentWeather{
			Temperature: 24.5,
			Humidity:    82,
			WindSpeed:   7.2,
			WeatherCode: 2,
			Condition:   "Partly cloudy",
		})
	}))
	defer srv.Close()

	weather, err := NewClient(srv.URL).CurrentWeather(context.Background(), 12.97, 77.59)
	if err != nil {
		t.Fatalf("CurrentWeather failed: %v", err)
	}
	if weather.Condition != "Partly cloudy" || weather.Humidity != 82 {
		t.Errorf("weather = %+v", weather)
	}
}

func TestDiseaseRiskDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DiseaseRisk{
			FungalDiseaseRisk:    "high",
			BacterialDiseaseRisk: "low",
			PestActivityRisk:     "medium",
			SprayConditions:      "poor",
			Alerts:               []string{"⚠️ High risk of fungal diseases (Late Blight, Powdery Mildew)"},
			Recommendations:      []string{"Apply preventive fungicide spray"},
			OverallRiskScore:     67,
			OverallRiskLevel:     "medium",
		})
	}))
	defer srv.Close()

	risk, err := NewClient(srv.URL).DiseaseRisk(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("DiseaseRisk failed: %v", err)
	}
	if risk.FungalDiseaseRisk != "high" || risk.OverallRiskScore != 67 {
		t.Errorf("risk = %+v", risk)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "provider unavailable",
			"hint":    "Check server logs for details",
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AIStatus(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "provider unavailable" || apiErr.Hint != "Check server logs for details" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestErrorDetailField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Disease not found"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).DiseaseEntry(context.Background(), "nonexistent")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if apiErr.Message != "Disease not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestClearSession(t *testing.T) {
	var method, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Session cleared"})
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).ClearSession(context.Background(), "abc123"); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if method != http.MethodDelete || path != "/chat/session/abc123" {
		t.Errorf("request = %s %s", method, path)
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("language"); got != "hi-IN" {
			t.Errorf("language field = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		json.NewEncoder(w).Encode(Transcription{Status: "success", Text: "मेरी फसल में कीड़े हैं"})
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "utterance.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0600); err != nil {
		t.Fatalf("failed to write temp audio: %v", err)
	}

	text, err := NewClient(srv.URL).Transcribe(context.Background(), audio, "hi-IN")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "मेरी फसल में कीड़े हैं" {
		t.Errorf("text = %q", text)
	}
}

func TestIPMStrategyRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req IPMRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Disease != "Late Blight" || req.Crop != "tomato" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(IPMStrategy{
			StrategyName: "Late Blight Defense",
			RiskAssessment: &RiskAssessment{
				CurrentSeverity: "high",
				SpreadRisk:      "high",
			},
			ImmediateActions: []ImmediateAction{
				{Action: "Remove infected leaves", Timing: "Today", Priority: "high"},
			},
			CompanionPlanting: []CompanionPlant{
				{Plant: "Basil", Benefit: "Repels aphids, whiteflies, and improves flavor"},
			},
		})
	}))
	defer srv.Close()

	strategy, err := NewClient(srv.URL).IPMStrategy(context.Background(), IPMRequest{
		Disease: "Late Blight",
		Crop:    "tomato",
	})
	if err != nil {
		t.Fatalf("IPMStrategy failed: %v", err)
	}
	if strategy.StrategyName != "Late Blight Defense" {
		t.Errorf("strategy = %+v", strategy)
	}
	if strategy.RiskAssessment == nil || strategy.RiskAssessment.CurrentSeverity != "high" {
		t.Errorf("risk assessment = %+v", strategy.RiskAssessment)
	}
}
