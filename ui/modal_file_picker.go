package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/lipgloss"

	"agriguard/config"
)

type FilePickerConfig struct {
	Title          string
	AllowedTypes   []string
	StartDirectory string
	ShowHidden     bool
}

type FilePickerState struct {
	Active bool
	Picker filepicker.Model
	Config FilePickerConfig
}

func NewFilePickerState(cfg FilePickerConfig) FilePickerState {
	fp := filepicker.New()
	fp.AllowedTypes = cfg.AllowedTypes
	fp.Height = 10
	fp.DirAllowed = true
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.ShowHidden = cfg.ShowHidden

	startDir := cfg.StartDirectory
	if startDir == "" {
		startDir = config.GetHomeDir()
	}
	fp.CurrentDirectory = startDir

	fp.Styles.Directory = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)
	fp.Styles.File = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15"))
	fp.Styles.Selected = lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().
		Foreground(successColor)

	return FilePickerState{
		Active: false,
		Picker: fp,
		Config: cfg,
	}
}

func (fps *FilePickerState) Activate() {
	fps.Active = true
}

func (fps *FilePickerState) Reset() {
	fps.Active = false
}

func RenderFilePickerModal(state FilePickerState, width, height int) string {
	// Guard clause: prevent rendering in tiny terminals
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := width - 10
	if modalWidth < 10 {
		modalWidth = 10
	}
	if modalWidth > 80 {
		modalWidth = 80
	}

	// Build message lines with file picker content
	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth)) // Top padding

	pickerView := state.Picker.View()
	pickerLines := strings.Split(pickerView, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Left)

	for _, line := range pickerLines {
		trimmedLine := strings.TrimRight(line, " ")
		styledLine := contentStyle.Render("  " + trimmedLine)
		messageLines = append(messageLines, styledLine)
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth)) // Bottom padding

	footer := "j/k Navigate  h/l Back/Forward  Enter Select  Esc Cancel"

	return RenderThreeSectionModal(
		state.Config.Title,
		messageLines,
		footer,
		ModalTypeInfo,
		modalWidth,
		width,
		height,
	)
}
