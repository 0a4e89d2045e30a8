package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// FetchWeatherSnapshot loads the current conditions and the disease
// risk assessment for the dashboard in one pass.
func (m *Model) FetchWeatherSnapshot() tea.Cmd {
	if m.Config == nil || !m.Config.HasLocation() {
		return nil
	}
	lat, lon := m.Config.Location()
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		current, err := gateway.CurrentWeather(ctx, lat, lon)
		if err != nil {
			return WeatherSnapshotMsg{Err: err}
		}
		risk, err := gateway.DiseaseRisk(ctx, lat, lon)
		if err != nil {
			return WeatherSnapshotMsg{Current: current, Err: err}
		}
		return WeatherSnapshotMsg{Current: current, Risk: risk}
	}
}

// FetchForecast loads the daily forecast for the dashboard.
func (m *Model) FetchForecast(days int) tea.Cmd {
	if m.Config == nil || !m.Config.HasLocation() {
		return nil
	}
	lat, lon := m.Config.Location()
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		forecast, err := gateway.WeatherForecast(ctx, lat, lon, days)
		return ForecastMsg{Forecast: forecast, Err: err}
	}
}

// FetchSprayWindows loads the upcoming windows suitable for spraying.
func (m *Model) FetchSprayWindows() tea.Cmd {
	if m.Config == nil || !m.Config.HasLocation() {
		return nil
	}
	lat, lon := m.Config.Location()
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		windows, err := gateway.SprayWindows(ctx, lat, lon)
		return SprayWindowsMsg{Windows: windows, Err: err}
	}
}

// FetchOutbreakForecast predicts disease pressure over the coming
// week for the configured crop.
func (m *Model) FetchOutbreakForecast(crop string) tea.Cmd {
	if m.Config == nil || !m.Config.HasLocation() {
		return nil
	}
	if crop == "" {
		crop = m.Config.CropType
	}
	if crop == "" {
		return nil
	}
	lat, lon := m.Config.Location()
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		forecast, err := gateway.PredictOutbreak(ctx, crop, lat, lon)
		return OutbreakForecastMsg{Forecast: forecast, Err: err}
	}
}
