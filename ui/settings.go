package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agriguard/api"
	"agriguard/config"
)

// initSettingsFields snapshots the editable farm profile into the
// settings modal.
func (a *AppView) initSettingsFields() {
	cfg := a.dataModel.Config

	lat := ""
	lon := ""
	if cfg.Latitude != nil {
		lat = strconv.FormatFloat(*cfg.Latitude, 'f', -1, 64)
	}
	if cfg.Longitude != nil {
		lon = strconv.FormatFloat(*cfg.Longitude, 'f', -1, 64)
	}

	a.settingsFields = []SettingField{
		{Label: "Server URL", Value: cfg.ServerURL, DefaultValue: config.DefaultServerURL, Type: SettingTypeServerURL},
		{Label: "Latitude", Value: lat, DefaultValue: "", Type: SettingTypeLatitude},
		{Label: "Longitude", Value: lon, DefaultValue: "", Type: SettingTypeLongitude},
		{Label: "Crop Type", Value: cfg.CropType, DefaultValue: "", Type: SettingTypeCropType},
		{Label: "Speak Replies", Value: boolToString(cfg.SpeakReplies), DefaultValue: "false", Type: SettingTypeSpeakReplies},
	}

	a.selectedSettingIdx = 0
	a.settingsEditMode = false
	a.settingsHasChanges = false
	a.settingsSaveError = ""

	if a.settingsEditInput.Width == 0 {
		a.settingsEditInput = textinput.New()
		a.settingsEditInput.Width = 50
		a.settingsEditInput.CharLimit = 200
	}
}

func (a AppView) handleSettingsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If showing save error, Enter/Esc clears it
	if a.settingsSaveError != "" {
		if msg.String() == "enter" || msg.String() == "esc" {
			a.settingsSaveError = ""
		}
		return a, nil
	}

	if a.settingsEditMode {
		return a.handleSettingsEditMode(msg)
	}

	switch msg.String() {
	case "esc", "q":
		a.showSettings = false
		return a, nil

	case "j", "down":
		if a.selectedSettingIdx < len(a.settingsFields)-1 {
			a.selectedSettingIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedSettingIdx > 0 {
			a.selectedSettingIdx--
		}
		return a, nil

	case "enter":
		// Boolean fields toggle in place
		if a.settingsFields[a.selectedSettingIdx].Type == SettingTypeSpeakReplies {
			if a.settingsFields[a.selectedSettingIdx].Value == "true" {
				a.settingsFields[a.selectedSettingIdx].Value = "false"
			} else {
				a.settingsFields[a.selectedSettingIdx].Value = "true"
			}
			a.settingsHasChanges = true
			return a, nil
		}

		a.settingsEditMode = true
		a.settingsEditInput.SetValue(a.settingsFields[a.selectedSettingIdx].Value)
		a.settingsEditInput.Focus()
		return a, textinput.Blink

	case "r":
		// Reset to default
		a.settingsFields[a.selectedSettingIdx].Value = a.settingsFields[a.selectedSettingIdx].DefaultValue
		a.settingsFields[a.selectedSettingIdx].ErrorMsg = ""
		a.settingsHasChanges = true
		return a, nil

	case "alt+enter":
		return a.saveSettings()
	}

	return a, nil
}

func (a AppView) handleSettingsEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		// Cancel edit
		a.settingsEditMode = false
		a.settingsEditInput.Blur()
		return a, nil

	case "enter":
		newValue := strings.TrimSpace(a.settingsEditInput.Value())
		if newValue != a.settingsFields[a.selectedSettingIdx].Value {
			a.settingsFields[a.selectedSettingIdx].Value = newValue
			a.settingsFields[a.selectedSettingIdx].ErrorMsg = ""
			a.settingsHasChanges = true
		}
		a.settingsEditMode = false
		a.settingsEditInput.Blur()
		return a, nil

	case "alt+u":
		a.settingsEditInput.SetValue("")
		return a, nil
	}

	a.settingsEditInput, cmd = a.settingsEditInput.Update(msg)
	return a, cmd
}

// saveSettings validates the fields, persists them, and applies them to
// the running session.
func (a AppView) saveSettings() (tea.Model, tea.Cmd) {
	var serverURL, cropType string
	var lat, lon *float64
	speakReplies := false

	for i := range a.settingsFields {
		field := &a.settingsFields[i]
		value := strings.TrimSpace(field.Value)

		switch field.Type {
		case SettingTypeServerURL:
			if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
				a.settingsSaveError = "Server URL must start with http:// or https://"
				return a, nil
			}
			serverURL = value

		case SettingTypeLatitude:
			if value != "" {
				v, err := strconv.ParseFloat(value, 64)
				if err != nil || v < -90 || v > 90 {
					a.settingsSaveError = "Latitude must be a number between -90 and 90"
					return a, nil
				}
				lat = &v
			}

		case SettingTypeLongitude:
			if value != "" {
				v, err := strconv.ParseFloat(value, 64)
				if err != nil || v < -180 || v > 180 {
					a.settingsSaveError = "Longitude must be a number between -180 and 180"
					return a, nil
				}
				lon = &v
			}

		case SettingTypeCropType:
			cropType = value

		case SettingTypeSpeakReplies:
			speakReplies = stringToBool(value)
		}
	}

	if (lat == nil) != (lon == nil) {
		a.settingsSaveError = "Latitude and longitude must be set together"
		return a, nil
	}

	dataDir := a.dataModel.Config.DataDir()

	// Load the existing file so fields outside this screen survive
	userCfg, err := config.LoadUserConfig(dataDir)
	if err != nil {
		a.settingsSaveError = fmt.Sprintf("Failed to load existing config: %v", err)
		return a, nil
	}

	userCfg.Server.URL = serverURL
	userCfg.Farm.Latitude = lat
	userCfg.Farm.Longitude = lon
	userCfg.Farm.CropType = cropType
	userCfg.SpeakReplies = speakReplies

	if err := config.SaveUserConfig(userCfg, dataDir); err != nil {
		a.settingsSaveError = fmt.Sprintf("Failed to save config: %v", err)
		return a, nil
	}

	oldURL := a.dataModel.Config.APIBaseURL()
	hadLocation := a.dataModel.Config.HasLocation()

	a.dataModel.Config.ServerURL = serverURL
	a.dataModel.Config.Latitude = lat
	a.dataModel.Config.Longitude = lon
	a.dataModel.Config.CropType = cropType
	a.dataModel.Config.SpeakReplies = speakReplies

	a.showSettings = false
	a.settingsHasChanges = false
	a.settingsSaveError = ""

	var cmds []tea.Cmd

	// A new backend means the old health snapshot is meaningless
	if a.dataModel.Config.APIBaseURL() != oldURL {
		a.dataModel.Gateway = api.NewClient(a.dataModel.Config.APIBaseURL())
		cmds = append(cmds, a.dataModel.FetchHealth(), a.dataModel.FetchAIStatus())
	}

	// Coordinates just arrived, pull the dashboard for them
	if !hadLocation && a.dataModel.Config.HasLocation() {
		cmds = append(cmds, a.fetchWeatherDashboard()...)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Settings] Saved: server=%s location=%v crop=%q speak=%v",
			a.dataModel.Config.APIBaseURL(), a.dataModel.Config.HasLocation(), cropType, speakReplies)
	}

	if len(cmds) == 0 {
		return a, nil
	}
	return a, tea.Batch(cmds...)
}

func renderSettings(fields []SettingField, selectedIdx int, editMode bool, editInput textinput.Model, hasChanges bool, saveError string, width, height int) string {
	if saveError != "" {
		return RenderAcknowledgeModal(
			"Error Saving Settings",
			saveError,
			ModalTypeError,
			width,
			height,
		)
	}

	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	if modalWidth < 40 {
		modalWidth = 40
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Farm Settings (Alt+S)")

	separator := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(strings.Repeat("─", modalWidth))

	var settingsLines []string
	for i, field := range fields {
		var line string

		if editMode && i == selectedIdx {
			label := field.Label
			labelPadding := strings.Repeat(" ", 20-len(label))
			inputBox := lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true).
				Width(modalWidth - 24).
				Render(editInput.View())
			line = fmt.Sprintf("  %s%s%s", label, labelPadding, inputBox)
		} else {
			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			label := fmt.Sprintf("%s%s", indicator, field.Label)
			maxLabelWidth := 20
			if len(label) < maxLabelWidth {
				label = label + strings.Repeat(" ", maxLabelWidth-len(label))
			}

			value := field.Value
			if value == "" {
				value = "(not set)"
			}
			maxValueWidth := modalWidth - maxLabelWidth - 4
			if len(value) > maxValueWidth {
				value = value[:maxValueWidth-3] + "..."
			}

			line = label + value

			lineStyle := lipgloss.NewStyle()
			if i == selectedIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			}

			line = lineStyle.Render(line)
		}

		paddedLine := lipgloss.NewStyle().
			Width(modalWidth).
			Render(line)
		settingsLines = append(settingsLines, paddedLine)
	}

	var footerText string
	if editMode {
		footerText = FormatFooter("Enter", "Save", "Alt+U", "Clear", "Esc", "Cancel")
	} else if hasChanges {
		footerText = FormatFooter("Alt+Enter", "Save", "r", "Reset", "Esc", "Discard")
	} else {
		footerText = FormatFooter("j/k", "Navigate", "Enter", "Edit", "r", "Reset", "Esc", "Close")
	}
	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(footerText)

	var content strings.Builder
	content.WriteString(title + "\n")
	content.WriteString(separator + "\n")
	content.WriteString(strings.Repeat(" ", modalWidth) + "\n")
	for _, line := range settingsLines {
		content.WriteString(line + "\n")
	}
	content.WriteString(strings.Repeat(" ", modalWidth) + "\n")
	content.WriteString(separator + "\n")
	content.WriteString(footer)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}
