package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
)

// AnalyzeLeafCmd runs the structured disease scan on a photo from the
// scanner tab.
func (m *Model) AnalyzeLeafCmd(imagePath, cropType, fieldContext string) tea.Cmd {
	if imagePath == "" {
		return nil
	}
	if cropType == "" && m.Config != nil {
		cropType = m.Config.CropType
	}

	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Scanner] analyzing %s (crop=%q)", imagePath, cropType)
		}

		analysis, err := gateway.AnalyzeLeaf(ctx, imagePath, cropType, fieldContext)
		return LeafAnalysisMsg{Analysis: analysis, Err: err}
	}
}
