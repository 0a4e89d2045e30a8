package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/api"
)

// FetchIPMStrategy generates a full treatment strategy for a named
// disease and crop.
func (m *Model) FetchIPMStrategy(disease, crop, extraContext string) tea.Cmd {
	if disease == "" || crop == "" {
		return nil
	}

	req := api.IPMRequest{
		Disease: disease,
		Crop:    crop,
		Context: extraContext,
	}
	if m.Config != nil && m.Config.HasLocation() {
		lat, lon := m.Config.Location()
		req.Latitude = &lat
		req.Longitude = &lon
	}

	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		strategy, err := gateway.IPMStrategy(ctx, req)
		return IPMStrategyMsg{Strategy: strategy, Err: err}
	}
}

// FetchQuickIPM asks for a short, immediately actionable
// recommendation instead of the full plan.
func (m *Model) FetchQuickIPM(pest, crop string) tea.Cmd {
	if pest == "" || crop == "" {
		return nil
	}
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		rec, err := gateway.QuickIPM(ctx, pest, crop)
		return QuickIPMMsg{Recommendation: rec, Err: err}
	}
}

// FetchDiseaseDatabase loads the built-in reference of common
// diseases for the browser.
func (m *Model) FetchDiseaseDatabase() tea.Cmd {
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		db, err := gateway.DiseaseDatabase(ctx)
		return DiseaseDatabaseMsg{Database: db, Err: err}
	}
}

// FetchDiseaseEntry loads one disease from the reference.
func (m *Model) FetchDiseaseEntry(key string) tea.Cmd {
	if key == "" {
		return nil
	}
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardTimeout)
		defer cancel()

		info, err := gateway.DiseaseEntry(ctx, key)
		return DiseaseEntryMsg{Key: key, Info: info, Err: err}
	}
}
