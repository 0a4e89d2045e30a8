package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ModalType determines the color and styling of a modal
type ModalType int

const (
	ModalTypeInfo ModalType = iota
	ModalTypeWarning
	ModalTypeError
)

// RenderAcknowledgeModal renders a modal that requires only acknowledgement (Enter to dismiss)
// Used for informational messages, warnings, and errors that don't need user confirmation
func RenderAcknowledgeModal(title, message string, modalType ModalType, width, height int) string {
	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	// Determine title color based on modal type
	var titleColor lipgloss.Color
	switch modalType {
	case ModalTypeInfo:
		titleColor = accentColor
	case ModalTypeWarning:
		titleColor = warningColor
	case ModalTypeError:
		titleColor = dangerColor
	}

	// Title section (no borders)
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	// Message section (with top border)
	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth)) // Empty line

	messageStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center)

	for _, line := range strings.Split(message, "\n") {
		styledLine := messageStyle.Render(line)
		messageLines = append(messageLines, styledLine)
	}

	messageLines = append(messageLines, strings.Repeat(" ", modalWidth)) // Empty line

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(messageLines, "\n"))

	// Footer section (with top border only)
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Press Enter to acknowledge")

	// Combine sections
	sections := []string{titleSection, messageSection, footerSection}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// RenderThreeSectionModal renders a borderless modal with title, message, and footer sections
// This is the standard AgriGuard modal pattern: Title (no border) → Message (BorderTop) → Footer (BorderTop)
// messageLines should be pre-formatted content lines (without padding - padding is added automatically)
// footer should be pre-formatted using FormatFooter() or a simple string
// desiredWidth: preferred modal width (0 = default 60)
func RenderThreeSectionModal(title string, messageLines []string, footer string, modalType ModalType, desiredWidth, width, height int) string {
	modalWidth := desiredWidth
	if modalWidth == 0 {
		modalWidth = 60 // default width
	}
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	// Determine title color based on modal type
	var titleColor lipgloss.Color
	switch modalType {
	case ModalTypeInfo:
		titleColor = accentColor
	case ModalTypeWarning:
		titleColor = warningColor
	case ModalTypeError:
		titleColor = dangerColor
	}

	// Title section - manually centered using runewidth for accurate emoji handling
	titleVisualWidth := runewidth.StringWidth(title)
	leftPad := (modalWidth-titleVisualWidth)/2 - 2 // Shift 2 spaces left for visual alignment
	if leftPad < 0 {
		leftPad = 0 // Safety check for very long titles
	}
	rightPad := modalWidth - titleVisualWidth - leftPad
	centeredTitle := strings.Repeat(" ", leftPad) + title + strings.Repeat(" ", rightPad)

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Render(centeredTitle)

	// Message section (with top border and padding)
	var contentLines []string
	contentLines = append(contentLines, strings.Repeat(" ", modalWidth)) // Top padding

	// Add message lines (already formatted by caller)
	for _, line := range messageLines {
		contentLines = append(contentLines, line)
	}

	contentLines = append(contentLines, strings.Repeat(" ", modalWidth)) // Bottom padding

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Width(modalWidth).
		Render(strings.Join(contentLines, "\n"))

	// Footer section (with top border only)
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	// Combine sections
	sections := []string{titleSection, messageSection, footerSection}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// wordWrap wraps text to fit within the specified width while preserving newlines
// Shared helper function for all modals that need text wrapping
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	// Split by newlines first to preserve them
	paragraphs := strings.Split(text, "\n")

	for i, paragraph := range paragraphs {
		if paragraph == "" {
			// Preserve empty lines
			if i > 0 {
				result.WriteString("\n")
			}
			continue
		}

		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine + "\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)

		// Add newline between paragraphs (but not after the last one)
		if i < len(paragraphs)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}
