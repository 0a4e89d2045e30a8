// Package api is a typed client for the AgriGuard backend. It maps one
// method to each backend capability, decodes responses into the wire
// structs, and passes every transport or server error straight back to
// the caller: no retries, no caching, no fallbacks.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the backend origin used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// Error is a non-2xx backend response.
type Error struct {
	StatusCode int
	Message    string
	Hint       string
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("server returned %d: %s (%s)", e.StatusCode, e.Message, e.Hint)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the AgriGuard backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given backend origin.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Vision analysis on a local model can take a while.
		http: &http.Client{Timeout: 120 * time.Second},
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches the liveness payload.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AIStatus fetches provider availability and model names.
func (c *Client) AIStatus(ctx context.Context) (*AIStatus, error) {
	var out AIStatus
	if err := c.getJSON(ctx, "/ai-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage sends a text-only chat message.
func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "/chat/message", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessageWithImage sends a chat message with an attached image file.
func (c *Client) SendMessageWithImage(ctx context.Context, req ChatRequest, imagePath string) (*ChatResponse, error) {
	fields := map[string]string{
		"message":  req.Message,
		"language": req.Language,
	}
	if req.SessionID != "" {
		fields["session_id"] = req.SessionID
	}
	if req.Latitude != nil {
		fields["latitude"] = formatFloat(*req.Latitude)
	}
	if req.Longitude != nil {
		fields["longitude"] = formatFloat(*req.Longitude)
	}
	if req.CropType != "" {
		fields["crop_type"] = req.CropType
	}

	var out ChatResponse
	if err := c.postFile(ctx, "/chat/message/upload", fields, imagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatIPMStrategy requests a treatment plan formatted for the chat
// transcript.
func (c *Client) ChatIPMStrategy(ctx context.Context, req IPMChatRequest) (*IPMChatResponse, error) {
	var out IPMChatResponse
	if err := c.postJSON(ctx, "/chat/ipm-strategy", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionInfo reports how much server-side history a session carries.
func (c *Client) SessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error) {
	var out SessionInfo
	if err := c.getJSON(ctx, "/chat/session/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearSession drops the server-side history for a session.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	endpoint := c.baseURL + "/chat/session/" + url.PathEscape(sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, nil)
}

// AnalyzeLeaf uploads a plant image for structured disease detection.
func (c *Client) AnalyzeLeaf(ctx context.Context, imagePath, cropType, fieldContext string) (*LeafAnalysis, error) {
	fields := map[string]string{}
	if cropType != "" {
		fields["crop_type"] = cropType
	}
	if fieldContext != "" {
		fields["context"] = fieldContext
	}

	var out LeafAnalysis
	if err := c.postFile(ctx, "/analysis/leaf/upload", fields, imagePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickAnalysis uploads an image with a free-form question and returns
// the conversational answer.
func (c *Client) QuickAnalysis(ctx context.Context, imagePath, question string) (string, error) {
	fields := map[string]string{}
	if question != "" {
		fields["question"] = question
	}

	var out QuickAnalysis
	if err := c.postFile(ctx, "/analysis/quick", fields, imagePath, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// AnalyzeField submits field imagery for a zone health map.
func (c *Client) AnalyzeField(ctx context.Context, imageBase64, fieldContext string) (*FieldAnalysis, error) {
	in := struct {
		ImageBase64  string `json:"image_base64"`
		FieldContext string `json:"field_context,omitempty"`
	}{imageBase64, fieldContext}

	var out FieldAnalysis
	if err := c.postJSON(ctx, "/analysis/field", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentWeather fetches current conditions for a location.
func (c *Client) CurrentWeather(ctx context.Context, latitude, longitude float64) (*CurrentWeather, error) {
	var out CurrentWeather
	if err := c.getJSON(ctx, "/weather/current", coordQuery(latitude, longitude), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeatherForecast fetches the daily forecast, up to 16 days.
func (c *Client) WeatherForecast(ctx context.Context, latitude, longitude float64, days int) (*Forecast, error) {
	query := coordQuery(latitude, longitude)
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var out Forecast
	if err := c.getJSON(ctx, "/weather/forecast", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiseaseRisk fetches the weather-based risk assessment.
func (c *Client) DiseaseRisk(ctx context.Context, latitude, longitude float64) (*DiseaseRisk, error) {
	var out DiseaseRisk
	if err := c.getJSON(ctx, "/weather/disease-risk", coordQuery(latitude, longitude), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SprayWindows fetches favorable spray days from the forecast.
func (c *Client) SprayWindows(ctx context.Context, latitude, longitude float64) (*SprayWindows, error) {
	var out SprayWindows
	if err := c.getJSON(ctx, "/weather/spray-windows", coordQuery(latitude, longitude), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IPMStrategy generates a full management plan.
func (c *Client) IPMStrategy(ctx context.Context, req IPMRequest) (*IPMStrategy, error) {
	var out IPMStrategy
	if err := c.postJSON(ctx, "/ipm/strategy", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickIPM fetches a short conversational recommendation.
func (c *Client) QuickIPM(ctx context.Context, disease, crop string) (*QuickRecommendation, error) {
	query := url.Values{}
	if crop != "" {
		query.Set("crop", crop)
	}

	var out QuickRecommendation
	if err := c.getJSON(ctx, "/ipm/quick/"+url.PathEscape(disease), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PredictOutbreak fetches the 7-day outbreak risk forecast.
func (c *Client) PredictOutbreak(ctx context.Context, crop string, latitude, longitude float64) (*OutbreakForecast, error) {
	query := coordQuery(latitude, longitude)
	if crop != "" {
		query.Set("crop", crop)
	}

	var out OutbreakForecast
	if err := c.getJSON(ctx, "/ipm/predict-outbreak", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiseaseDatabase fetches the preset disease reference.
func (c *Client) DiseaseDatabase(ctx context.Context) (*DiseaseDatabase, error) {
	var out DiseaseDatabase
	if err := c.getJSON(ctx, "/ipm/database", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiseaseEntry fetches one preset disease by key.
func (c *Client) DiseaseEntry(ctx context.Context, key string) (*DiseaseInfo, error) {
	var out struct {
		Status string      `json:"status"`
		Data   DiseaseInfo `json:"data"`
	}
	if err := c.getJSON(ctx, "/ipm/database/"+url.PathEscape(key), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Transcribe uploads a recorded utterance and returns its text.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	fields := map[string]string{}
	if language != "" {
		fields["language"] = language
	}

	var out Transcription
	if err := c.postFile(ctx, "/voice/transcribe", fields, audioPath, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func coordQuery(latitude, longitude float64) url.Values {
	query := url.Values{}
	query.Set("latitude", formatFloat(latitude))
	query.Set("longitude", formatFloat(longitude))
	return query
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) postFile(ctx context.Context, path string, fields map[string]string, filePath string, out any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's error envelope when present.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status}

	var payload struct {
		Message string `json:"message"`
		Hint    string `json:"hint"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		}
		apiErr.Hint = payload.Hint
	}

	if apiErr.Message == "" {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		apiErr.Message = msg
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
