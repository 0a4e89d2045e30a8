package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"agriguard/i18n"
)

func (a AppView) renderLanguageSelector() string {
	// Modal dimensions
	modalWidth := a.width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	modalHeight := a.height - 6

	// Title section (no borders)
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(a.dataModel.T("languageTitle"))

	// Header: show filter input or count
	var header string
	if a.languageFilterMode {
		header = a.languageFilterInput.View()
	} else {
		displayList := a.getLanguageList()
		if len(i18n.Registry) == len(displayList) {
			header = fmt.Sprintf("%d languages", len(i18n.Registry))
		} else {
			header = fmt.Sprintf("%d of %d languages", len(displayList), len(i18n.Registry))
		}
	}

	// Header section (with top and bottom borders)
	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	displayList := a.getLanguageList()
	activeCode := a.dataModel.Lang.Active()

	// Language list
	var languageLines []string
	maxLines := modalHeight - 8 // Reserve space for title, borders, header, footer

	if len(displayList) == 0 {
		emptyMsgStyled := lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render("No matches found")
		languageLines = append(languageLines, emptyMsgStyled)
	} else {
		startIdx := 0
		endIdx := len(displayList)

		// Scroll if needed
		if len(displayList) > maxLines {
			if a.selectedLanguageIdx < maxLines/2 {
				endIdx = maxLines
			} else if a.selectedLanguageIdx >= len(displayList)-maxLines/2 {
				startIdx = len(displayList) - maxLines
			} else {
				startIdx = a.selectedLanguageIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(displayList); i++ {
			lang := displayList[i]

			indicator := "  "
			if i == a.selectedLanguageIdx {
				indicator = "▶ "
			}

			currentMarker := ""
			if lang.Code == activeCode {
				currentMarker = " (current)"
			}

			// Native name on the left, English name on the right
			left := fmt.Sprintf("%s%s %s%s", indicator, lang.Flag, lang.NativeName, currentMarker)
			right := lang.Name

			// Flags are emoji, so measure visual width instead of byte length
			spacing := modalWidth - runewidth.StringWidth(left) - runewidth.StringWidth(right) - 4
			if spacing < 1 {
				spacing = 1
			}

			line := fmt.Sprintf("%s%s%s", left, strings.Repeat(" ", spacing), right)

			lineStyle := lipgloss.NewStyle()
			if i == a.selectedLanguageIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			} else if lang.Code == activeCode {
				lineStyle = lineStyle.Foreground(accentColor).Bold(true)
			}

			paddedLine := lipgloss.NewStyle().
				Width(modalWidth).
				Render(lineStyle.Render(line))

			languageLines = append(languageLines, paddedLine)
		}
	}

	// Add empty line before and after list
	emptyLine := strings.Repeat(" ", modalWidth)
	languageLines = append([]string{emptyLine}, languageLines...)
	languageLines = append(languageLines, emptyLine)

	// Footer
	var footerText string
	if a.languageFilterMode {
		footerText = FormatFooter("Type", "to filter", "Alt+J/K", "Navigate", "Enter", "Select", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("/", "Filter", "j/k", "Navigate", "Enter", "Select", "Esc", "Exit")
	}
	// Footer section (with top border only)
	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footerText)

	// Combine all sections
	var sections []string
	sections = append(sections, titleSection)
	sections = append(sections, headerSection)
	for _, line := range languageLines {
		sections = append(sections, line)
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	// Center the modal
	modalStyle := lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Align(lipgloss.Center, lipgloss.Center)

	return modalStyle.Render(content)
}
