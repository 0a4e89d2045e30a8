// Package weather fetches conditions and forecasts from the Open-Meteo
// API and derives the agronomic assessments built on them: disease risk
// levels, spray condition ratings, and favorable spray windows. Open-Meteo
// needs no API key, so the package works out of the box.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agriguard/api"
)

// DefaultBaseURL is the public Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1"

// Client talks to the Open-Meteo forecast API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a weather client. An empty baseURL selects the
// public Open-Meteo service.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// currentPayload mirrors the "current" block of an Open-Meteo response.
type currentPayload struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// dailyPayload mirrors the "daily" block of an Open-Meteo response.
// Each field is a column; rows are matched up by index.
type dailyPayload struct {
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
		Humidity      []float64 `json:"relative_humidity_2m_mean"`
		WindSpeed     []float64 `json:"wind_speed_10m_max"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"daily"`
}

// Current fetches current conditions for a location.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*api.CurrentWeather, error) {
	query := coordQuery(latitude, longitude)
	query.Set("current", "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,weather_code")
	query.Set("timezone", "auto")

	var payload currentPayload
	if err := c.getJSON(ctx, query, &payload); err != nil {
		return nil, err
	}

	cur := payload.Current
	return &api.CurrentWeather{
		Temperature:   cur.Temperature,
		Humidity:      cur.Humidity,
		Precipitation: cur.Precipitation,
		WindSpeed:     cur.WindSpeed,
		WeatherCode:   cur.WeatherCode,
		Condition:     CodeToCondition(cur.WeatherCode),
		Timestamp:     time.Now().Format(time.RFC3339),
	}, nil
}

// Forecast fetches the daily forecast. Open-Meteo serves at most 16
// days; days outside 1..16 are clamped.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64, days int) (*api.Forecast, error) {
	if days <= 0 {
		days = 7
	}
	if days > 16 {
		days = 16
	}

	query := coordQuery(latitude, longitude)
	query.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_mean,wind_speed_10m_max,weather_code")
	query.Set("timezone", "auto")
	query.Set("forecast_days", strconv.Itoa(days))

	var payload dailyPayload
	if err := c.getJSON(ctx, query, &payload); err != nil {
		return nil, err
	}

	daily := payload.Daily
	forecast := make([]api.ForecastDay, 0, len(daily.Time))
	for i, date := range daily.Time {
		forecast = append(forecast, api.ForecastDay{
			Date:          date,
			TempMax:       floatAt(daily.TempMax, i),
			TempMin:       floatAt(daily.TempMin, i),
			Precipitation: floatAt(daily.Precipitation, i),
			Humidity:      floatAt(daily.Humidity, i),
			WindSpeed:     floatAt(daily.WindSpeed, i),
			WeatherCode:   intAt(daily.WeatherCode, i),
		})
	}

	return &api.Forecast{
		Location:    api.Location{Latitude: latitude, Longitude: longitude},
		Forecast:    forecast,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, query url.Values, out any) error {
	endpoint := c.baseURL + "/forecast?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather service returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}

func coordQuery(latitude, longitude float64) url.Values {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	return query
}

// Columns can come back shorter than the time axis; missing cells read
// as zero.
func floatAt(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

func intAt(vals []int, i int) int {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

// conditions maps WMO weather interpretation codes to display text.
var conditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
}

// CodeToCondition converts a WMO weather code to readable text.
func CodeToCondition(code int) string {
	if cond, ok := conditions[code]; ok {
		return cond
	}
	return "Unknown"
}
