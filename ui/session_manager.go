package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"agriguard/storage"
)

func renderSessionManager(sessions []storage.SessionMetadata, selectedIdx int, currentSessionID string, renameMode bool, renameInput textinput.Model, confirmDelete *storage.SessionMetadata, filterMode bool, filterInput textinput.Model, filteredSessions []storage.SessionMetadata, width, height int) string {
	// Modal dimensions
	modalWidth := width - 10
	if modalWidth > 110 {
		modalWidth = 110
	}
	modalHeight := height - 6

	// Show delete confirmation if set
	if confirmDelete != nil {
		warningText := lipgloss.NewStyle().Foreground(dangerColor).Render("This action cannot be undone.")
		return RenderConfirmationModal(ConfirmationState{
			Active:  true,
			Title:   "⚠ Delete Session",
			Message: fmt.Sprintf("Are you sure you want to delete:\n\n\"%s\"\n\n%s", confirmDelete.Name, warningText),
		}, width, height)
	}

	// Title section (no borders)
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Sessions")

	// Header: show filter input or count
	var header string
	if filterMode {
		header = filterInput.View()
	} else {
		displayList := sessions
		if len(filteredSessions) > 0 {
			displayList = filteredSessions
		}
		if len(sessions) == len(displayList) {
			header = fmt.Sprintf("%d sessions", len(sessions))
		} else {
			header = fmt.Sprintf("%d of %d sessions", len(displayList), len(sessions))
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

	// Determine which list to display
	displayList := sessions
	if filterMode && len(filteredSessions) > 0 {
		displayList = filteredSessions
	}

	// Session list
	var sessionLines []string
	maxLines := modalHeight - 8 // Reserve space for title, borders, header, footer

	if len(displayList) == 0 {
		emptyMsg := ""
		if filterMode {
			emptyMsg = "No matches found"
		} else {
			emptyMsg = "No sessions yet. Start chatting to create one!"
		}
		emptyMsgStyled := lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg)
		sessionLines = append(sessionLines, emptyMsgStyled)
	} else {
		startIdx := 0
		endIdx := len(displayList)

		// Scroll if needed
		if len(displayList) > maxLines {
			if selectedIdx < maxLines/2 {
				endIdx = maxLines
			} else if selectedIdx >= len(displayList)-maxLines/2 {
				startIdx = len(displayList) - maxLines
			} else {
				startIdx = selectedIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(displayList); i++ {
			session := displayList[i]

			// Format session line
			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			// Session name (truncate if needed)
			name := session.Name
			maxNameWidth := modalWidth - 48 // Reserve space for metadata + padding (no side borders)

			// Show textinput if in rename mode for this session
			var nameDisplay string
			if renameMode && i == selectedIdx {
				// Show textinput inline with accent color
				styledInput := lipgloss.NewStyle().
					Foreground(accentColor).
					Bold(true).
					Render(renameInput.View())
				nameDisplay = styledInput
			} else {
				if len(name) > maxNameWidth {
					name = name[:maxNameWidth-3] + "..."
				}
				nameDisplay = name
			}

			// Check if this is the current session (will add marker after spacing calculation)
			hasCurrentMarker := false
			if session.ID == currentSessionID && !renameMode {
				hasCurrentMarker = true
			}

			// Message count
			msgCount := fmt.Sprintf("%d msgs", session.MessageCount)
			if session.MessageCount == 1 {
				msgCount = "1 msg"
			}

			// Language code
			lang := session.Language
			if lang == "" {
				lang = "-"
			}

			// Crop (truncate)
			crop := session.CropType
			if crop == "" {
				crop = "-"
			}
			if len(crop) > 10 {
				crop = crop[:10]
			}

			// Time ago
			timeAgo := formatTimeAgo(session.UpdatedAt)

			// Style the name display individually BEFORE building leftSide
			nameStyled := nameDisplay
			if i == selectedIdx {
				nameStyled = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(nameDisplay)
			} else if session.ID == currentSessionID {
				nameStyled = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(nameDisplay)
			}

			// Left side: indicator + styled name (no marker yet - added after spacing)
			leftSide := fmt.Sprintf("%s%s", indicator, nameStyled)

			// Right side: msgCount, language, crop, timeAgo (right-aligned)
			rightSide := fmt.Sprintf("%s  %6s  %10s  %8s", msgCount, lang, crop, timeAgo)

			// Calculate spacing using VISUAL width (not including ANSI codes)
			leftVisualWidth := len(indicator) + len(nameDisplay)
			spacing := modalWidth - 4 - leftVisualWidth - len(rightSide) // No side borders, just padding

			// Account for VISUAL width of styled markers we'll add (prevents line wrapping from ANSI codes)
			if hasCurrentMarker {
				spacing -= 10 // " (current)" = 10 visible characters
			}

			if spacing < 2 {
				spacing = 2
			}

			// Add styled markers after spacing calculation
			if hasCurrentMarker {
				// Use green when selected, blue when current but not selected
				markerColor := accentColor
				if i == selectedIdx {
					markerColor = successColor
				}
				currentStyled := lipgloss.NewStyle().Foreground(markerColor).Render("(current)")
				leftSide = leftSide + " " + currentStyled
			}

			// Style the right side individually BEFORE building line
			rightSideStyled := rightSide
			if i == selectedIdx {
				rightSideStyled = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(rightSide)
			} else if session.ID == currentSessionID {
				rightSideStyled = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(rightSide)
			}

			// Build the final line with all styled components
			styledLine := fmt.Sprintf("  %s%s%s  ", leftSide, strings.Repeat(" ", spacing), rightSideStyled)

			paddedLine := lipgloss.NewStyle().
				Width(modalWidth).
				Render(styledLine)

			sessionLines = append(sessionLines, paddedLine)
		}
	}

	// Add empty line before and after list
	emptyLine := strings.Repeat(" ", modalWidth)
	sessionLines = append([]string{emptyLine}, sessionLines...)
	sessionLines = append(sessionLines, emptyLine)

	// Footer
	var footerText string
	if renameMode {
		footerText = FormatFooter("Alt+U", "Clear", "Enter", "Save", "Esc", "Cancel")
	} else if filterMode {
		footerText = FormatFooter("Type", "to filter", "Alt+J/K", "Navigate", "Enter", "Load", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("/", "Filter", "j/k", "Navigate", "Enter", "Load", "r", "Rename", "d", "Delete", "Esc", "Exit")
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
	for _, line := range sessionLines {
		sections = append(sections, line)
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	// Center the modal
	modalStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return modalStyle.Render(content)
}

// formatTimeAgo formats a time as a relative string (e.g., "2h ago", "3d ago")
func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		mins := int(duration.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if duration < 7*24*time.Hour {
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	} else if duration < 30*24*time.Hour {
		weeks := int(duration.Hours() / 24 / 7)
		return fmt.Sprintf("%dw ago", weeks)
	} else {
		months := int(duration.Hours() / 24 / 30)
		return fmt.Sprintf("%dmo ago", months)
	}
}
