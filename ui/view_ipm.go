package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// renderIPMPane builds the treatment planner tab: the disease/crop form on
// top, then whichever of loading spinner, error or generated strategy
// applies below it.
func (a AppView) renderIPMPane() string {
	width := a.pane.Width - 2
	if width < 40 {
		width = 40
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("🌱 " + a.dataModel.T("ipmTitle")))
	b.WriteString("\n\n")

	diseaseLabelStyle := lipgloss.NewStyle()
	cropLabelStyle := lipgloss.NewStyle()
	if a.ipmFocusedField == 0 {
		diseaseLabelStyle = diseaseLabelStyle.Foreground(successColor).Bold(true)
	} else {
		cropLabelStyle = cropLabelStyle.Foreground(successColor).Bold(true)
	}

	b.WriteString(diseaseLabelStyle.Render("  "+a.dataModel.T("ipmDisease")) + "\n")
	b.WriteString("  " + a.ipmDiseaseInput.View() + "\n")
	b.WriteString(cropLabelStyle.Render("  "+a.dataModel.T("ipmCrop")) + "\n")
	b.WriteString("  " + a.ipmCropInput.View() + "\n\n")

	b.WriteString(DimStyle.Render(fmt.Sprintf("Enter %s  ·  Tab switch field  ·  Alt+D %s", a.dataModel.T("ipmGenerate"), a.dataModel.T("ipmDatabase"))) + "\n\n")

	if a.ipmLoading {
		b.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render(a.dataModel.T("loading"))))
		return b.String()
	}

	if a.ipmErr != nil {
		wrapped := wordWrapWithIndent("✗ "+a.ipmErr.Error(), "", width)
		b.WriteString(lipgloss.NewStyle().Foreground(dangerColor).Render(wrapped) + "\n\n")
		b.WriteString(DimStyle.Render("Enter "+a.dataModel.T("retry")) + "\n")
		return b.String()
	}

	if a.ipmStrategy == nil {
		return b.String()
	}

	strategy := a.ipmStrategy

	name := strategy.StrategyName
	if name == "" {
		name = a.dataModel.T("ipmTitle")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(name))
	if strategy.DiseasePest != "" {
		b.WriteString(DimStyle.Render("  " + strategy.DiseasePest))
	}
	b.WriteString("\n\n")

	if strategy.ParseError && strategy.RawStrategy != "" {
		b.WriteString(DimStyle.Render("The plan could not be fully structured; showing the raw result.") + "\n\n")
		b.WriteString(wordWrapWithIndent(strategy.RawStrategy, "", width) + "\n\n")
	}

	if ra := strategy.RiskAssessment; ra != nil {
		b.WriteString(TitleStyle.Render("Risk assessment") + "\n")
		if ra.CurrentSeverity != "" {
			b.WriteString("  Severity: " + RiskStyle(ra.CurrentSeverity).Render(ra.CurrentSeverity) + "\n")
		}
		if ra.SpreadRisk != "" {
			b.WriteString("  Spread risk: " + RiskStyle(ra.SpreadRisk).Render(ra.SpreadRisk) + "\n")
		}
		if ra.YieldImpactIfUntreated != "" {
			b.WriteString(wordWrapWithIndent("Yield impact if untreated: "+ra.YieldImpactIfUntreated, "  ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(strategy.ImmediateActions) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render("🚨 Immediate actions") + "\n")
		for _, action := range strategy.ImmediateActions {
			b.WriteString(wordWrapWithIndent(action.Action, "  • ", width))
			extras := []string{}
			if action.Timing != "" {
				extras = append(extras, action.Timing)
			}
			if action.Priority != "" {
				extras = append(extras, RiskStyle(action.Priority).Render(action.Priority))
			}
			if len(extras) > 0 {
				b.WriteString(DimStyle.Render(" (") + strings.Join(extras, DimStyle.Render(", ")) + DimStyle.Render(")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(strategy.WeeklyPlan) > 0 {
		b.WriteString(TitleStyle.Render("Weekly plan") + "\n")
		for _, week := range strategy.WeeklyPlan {
			b.WriteString(AssistantStyle.Render(fmt.Sprintf("  Week %d", week.Week)) + "\n")
			for _, action := range week.Actions {
				b.WriteString(wordWrapWithIndent(action, "    • ", width) + "\n")
			}
			if week.Monitoring != "" {
				b.WriteString(DimStyle.Render(wordWrapWithIndent("Monitor: "+week.Monitoring, "    ", width)) + "\n")
			}
			if week.ExpectedOutcome != "" {
				b.WriteString(DimStyle.Render(wordWrapWithIndent("Expected: "+week.ExpectedOutcome, "    ", width)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(strategy.OrganicSolutions) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(successColor).Bold(true).Render("🌿 "+a.dataModel.T("organicTreatments")) + "\n")
		for _, s := range strategy.OrganicSolutions {
			line := s.Product
			if s.Application != "" {
				line += ": " + s.Application
			}
			if s.Frequency != "" {
				line += ", " + s.Frequency
			}
			b.WriteString(wordWrapWithIndent(line, "  • ", width) + "\n")
			if s.Effectiveness != "" {
				b.WriteString(DimStyle.Render(wordWrapWithIndent("Effectiveness: "+s.Effectiveness, "      ", width)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(strategy.ChemicalSolutions) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Bold(true).Render("🧪 "+a.dataModel.T("chemicalTreatments")) + "\n")
		for _, s := range strategy.ChemicalSolutions {
			line := s.Product
			if s.ActiveIngredient != "" {
				line += " (" + s.ActiveIngredient + ")"
			}
			if s.Dosage != "" {
				line += ", " + s.Dosage
			}
			b.WriteString(wordWrapWithIndent(line, "  • ", width) + "\n")
			if s.SafetyPeriod != "" {
				b.WriteString(DimStyle.Render(wordWrapWithIndent("Safety period: "+s.SafetyPeriod, "      ", width)) + "\n")
			}
			for _, p := range s.SafetyPrecautions {
				b.WriteString(DimStyle.Render(wordWrapWithIndent(p, "      ! ", width)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(strategy.BiologicalControls) > 0 {
		b.WriteString(TitleStyle.Render("Biological controls") + "\n")
		for _, c := range strategy.BiologicalControls {
			line := c.Organism
			if c.TargetPest != "" {
				line += " against " + c.TargetPest
			}
			if c.Application != "" {
				line += ", " + c.Application
			}
			b.WriteString(wordWrapWithIndent(line, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(strategy.CompanionPlanting) > 0 {
		b.WriteString(TitleStyle.Render("Companion planting") + "\n")
		for _, plant := range strategy.CompanionPlanting {
			line := plant.Plant
			if plant.Benefit != "" {
				line += ": " + plant.Benefit
			}
			if plant.Placement != "" {
				line += " (" + plant.Placement + ")"
			}
			b.WriteString(wordWrapWithIndent(line, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(strategy.CulturalPractices) > 0 {
		b.WriteString(TitleStyle.Render("Cultural practices") + "\n")
		for _, p := range strategy.CulturalPractices {
			b.WriteString(wordWrapWithIndent(p, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if ms := strategy.MonitoringSchedule; ms != nil {
		b.WriteString(TitleStyle.Render("🔍 Monitoring") + "\n")
		if ms.Frequency != "" {
			b.WriteString("  Frequency: " + ms.Frequency + "\n")
		}
		for _, check := range ms.WhatToCheck {
			b.WriteString(wordWrapWithIndent(check, "  • ", width) + "\n")
		}
		if ms.ActionThresholds != "" {
			b.WriteString(DimStyle.Render(wordWrapWithIndent("Thresholds: "+ms.ActionThresholds, "  ", width)) + "\n")
		}
		b.WriteString("\n")
	}

	if len(strategy.PreventionForNextSeason) > 0 {
		b.WriteString(TitleStyle.Render(a.dataModel.T("prevention")) + "\n")
		for _, tip := range strategy.PreventionForNextSeason {
			b.WriteString(wordWrapWithIndent(tip, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if wc := strategy.WeatherConsiderations; wc != nil {
		b.WriteString(TitleStyle.Render("Weather considerations") + "\n")
		if wc.SprayTiming != "" {
			b.WriteString(wordWrapWithIndent("Spray timing: "+wc.SprayTiming, "  ", width) + "\n")
		}
		for _, factor := range wc.OutbreakRiskFactors {
			b.WriteString(wordWrapWithIndent(factor, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if wa := strategy.WeatherAnalysis; wa != nil {
		b.WriteString(TitleStyle.Render(a.dataModel.T("diseaseRisk")) + "\n")
		b.WriteString(fmt.Sprintf("  %s: %s   %s: %s   %s: %s\n",
			a.dataModel.T("fungalRisk"), RiskStyle(wa.FungalDiseaseRisk).Render(wa.FungalDiseaseRisk),
			a.dataModel.T("bacterialRisk"), RiskStyle(wa.BacterialDiseaseRisk).Render(wa.BacterialDiseaseRisk),
			a.dataModel.T("pestRisk"), RiskStyle(wa.PestActivityRisk).Render(wa.PestActivityRisk)))
		b.WriteString("\n")
	}

	if len(strategy.OptimalSprayWindows) > 0 {
		b.WriteString(TitleStyle.Render(a.dataModel.T("sprayWindows")) + "\n")
		for _, w := range strategy.OptimalSprayWindows {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				w.Date,
				RiskStyle(w.Quality).Render(fmt.Sprintf("%-9s", w.Quality)),
				DimStyle.Render(w.RecommendedTime)))
		}
		b.WriteString("\n")
	}

	if sm := strategy.SuccessMetrics; sm != nil {
		b.WriteString(TitleStyle.Render("Success metrics") + "\n")
		if sm.Week1Target != "" {
			b.WriteString(wordWrapWithIndent("Week 1: "+sm.Week1Target, "  ", width) + "\n")
		}
		if sm.Week4Target != "" {
			b.WriteString(wordWrapWithIndent("Week 4: "+sm.Week4Target, "  ", width) + "\n")
		}
		if sm.SeasonEndGoal != "" {
			b.WriteString(wordWrapWithIndent("Season end: "+sm.SeasonEndGoal, "  ", width) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// displayDiseaseName turns a database key like "late_blight" into "Late
// Blight" for form fields and headings.
func displayDiseaseName(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func (a AppView) renderDiseaseBrowser() string {
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
		Render(a.dataModel.T("ipmDatabase"))

	// Header: show filter input or count
	var header string
	if a.diseaseFilterMode {
		header = a.diseaseFilterInput.View()
	} else {
		displayList := a.getDiseaseKeys()
		if len(a.diseaseKeys) == len(displayList) {
			header = fmt.Sprintf("%d entries", len(a.diseaseKeys))
		} else {
			header = fmt.Sprintf("%d of %d entries", len(displayList), len(a.diseaseKeys))
		}
	}

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	displayList := a.getDiseaseKeys()

	var entryLines []string
	maxLines := modalHeight - 8 // Reserve space for title, borders, header, footer

	if a.diseaseDB == nil {
		loadingStyled := lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(a.dataModel.T("loading"))
		entryLines = append(entryLines, loadingStyled)
	} else if len(displayList) == 0 {
		emptyStyled := lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render("No matches found")
		entryLines = append(entryLines, emptyStyled)
	} else {
		startIdx := 0
		endIdx := len(displayList)

		// Scroll if needed
		if len(displayList) > maxLines {
			if a.selectedDiseaseIdx < maxLines/2 {
				endIdx = maxLines
			} else if a.selectedDiseaseIdx >= len(displayList)-maxLines/2 {
				startIdx = len(displayList) - maxLines
			} else {
				startIdx = a.selectedDiseaseIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(displayList); i++ {
			key := displayList[i]

			indicator := "  "
			if i == a.selectedDiseaseIdx {
				indicator = "▶ "
			}

			left := indicator + displayDiseaseName(key)

			// Affected crops on the right
			right := ""
			if info, ok := a.diseaseDB.Data[key]; ok && len(info.Crops) > 0 {
				right = strings.Join(info.Crops, ", ")
				if len(right) > 30 {
					right = right[:27] + "..."
				}
			}

			spacing := modalWidth - len([]rune(left)) - len(right) - 4
			if spacing < 1 {
				spacing = 1
			}

			line := left + strings.Repeat(" ", spacing) + right

			lineStyle := lipgloss.NewStyle()
			if i == a.selectedDiseaseIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			}

			paddedLine := lipgloss.NewStyle().
				Width(modalWidth).
				Render(lineStyle.Render(line))

			entryLines = append(entryLines, paddedLine)
		}
	}

	// Add empty line before and after list
	emptyLine := strings.Repeat(" ", modalWidth)
	entryLines = append([]string{emptyLine}, entryLines...)
	entryLines = append(entryLines, emptyLine)

	// Footer
	var footerText string
	if a.diseaseFilterMode {
		footerText = FormatFooter("Type", "to filter", "Alt+J/K", "Navigate", "Enter", "Details", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("/", "Filter", "j/k", "Navigate", "Enter", "Details", "g", "Plan", "q", "Quick Tips", "Esc", "Back")
	}
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
	for _, line := range entryLines {
		sections = append(sections, line)
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	modalStyle := lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Align(lipgloss.Center, lipgloss.Center)

	return modalStyle.Render(content)
}

func (a AppView) renderDiseaseDetail() string {
	info := a.diseaseDetail
	if info == nil {
		return ""
	}

	modalWidth := a.width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	if modalWidth < 40 {
		modalWidth = 40
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(modalWidth)
	lineStyle := lipgloss.NewStyle().Width(modalWidth)

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth)) // Top padding

	if len(info.Crops) > 0 {
		messageLines = append(messageLines, lineStyle.Render("  Affected crops: "+strings.Join(info.Crops, ", ")))
		messageLines = append(messageLines, strings.Repeat(" ", modalWidth))
	}

	appendSection := func(label string, entries []string) {
		if len(entries) == 0 {
			return
		}
		messageLines = append(messageLines, labelStyle.Render("  "+label))
		for _, entry := range entries {
			wrapped := wordWrap(entry, modalWidth-8)
			for j, line := range strings.Split(wrapped, "\n") {
				prefix := "    • "
				if j > 0 {
					prefix = "      "
				}
				messageLines = append(messageLines, lineStyle.Render(prefix+line))
			}
		}
		messageLines = append(messageLines, strings.Repeat(" ", modalWidth))
	}

	appendSection(a.dataModel.T("organicTreatments"), info.Organic)
	appendSection(a.dataModel.T("chemicalTreatments"), info.Chemical)
	appendSection(a.dataModel.T("prevention"), info.Prevention)

	title := info.Name
	if title == "" {
		title = displayDiseaseName(a.diseaseDetailKey)
	}

	return RenderThreeSectionModal(
		title,
		messageLines,
		"Press any key to go back",
		ModalTypeInfo,
		modalWidth,
		a.width,
		a.height,
	)
}
