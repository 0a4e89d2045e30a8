package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScannerPane builds the leaf scanner tab: a hint when no photo has
// been scanned, a spinner while the backend analyzes one, and the structured
// diagnosis once it answers.
func (a AppView) renderScannerPane() string {
	width := a.pane.Width - 2
	if width < 40 {
		width = 40
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("🔬 " + a.dataModel.T("tabScanner")))
	b.WriteString("\n\n")

	if a.scannerAnalyzing {
		b.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render(a.dataModel.T("analyzing"))))
		if a.scannerImagePath != "" {
			b.WriteString(DimStyle.Render("  "+a.scannerImagePath) + "\n")
		}
		return b.String()
	}

	if a.scannerErr != nil {
		wrapped := wordWrapWithIndent("✗ "+a.scannerErr.Error(), "", width)
		b.WriteString(lipgloss.NewStyle().Foreground(dangerColor).Render(wrapped) + "\n\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("Alt+R %s  ·  Alt+A %s", a.dataModel.T("retry"), a.dataModel.T("attachImage"))) + "\n")
		return b.String()
	}

	if a.scannerAnalysis == nil {
		b.WriteString(a.dataModel.T("scannerEmpty") + "\n\n")
		b.WriteString(DimStyle.Render(a.dataModel.T("scannerHint")) + "\n")
		b.WriteString(DimStyle.Render("Alt+A "+a.dataModel.T("attachImage")) + "\n")
		return b.String()
	}

	analysis := a.scannerAnalysis

	if a.scannerImagePath != "" {
		b.WriteString(DimStyle.Render("📷 "+a.scannerImagePath) + "\n\n")
	}

	if analysis.DiseaseDetected {
		name := analysis.DiseaseName
		if name == "" {
			name = a.dataModel.T("diseaseDetected")
		}
		verdict := lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
		b.WriteString(verdict.Render(fmt.Sprintf("⚠ %s: %s", a.dataModel.T("diseaseDetected"), name)) + "\n")
	} else {
		verdict := lipgloss.NewStyle().Foreground(successColor).Bold(true)
		b.WriteString(verdict.Render("✓ "+a.dataModel.T("healthy")) + "\n")
	}

	b.WriteString(fmt.Sprintf("%s: %.0f%%", a.dataModel.T("confidence"), analysis.Confidence*100))
	if analysis.UrgencyLevel != "" {
		b.WriteString(fmt.Sprintf("   %s: %s", a.dataModel.T("urgency"), RiskStyle(analysis.UrgencyLevel).Render(analysis.UrgencyLevel)))
	}
	b.WriteString("\n")

	if analysis.PestType != "" {
		pestLine := "Pest: " + analysis.PestType
		if analysis.LifecycleStage != "" {
			pestLine += " (" + analysis.LifecycleStage + ")"
		}
		b.WriteString(pestLine + "\n")
	}
	if analysis.AffectedAreaPercentage > 0 {
		b.WriteString(fmt.Sprintf("Affected area: %.0f%%\n", analysis.AffectedAreaPercentage))
	}
	if analysis.SpreadRisk != "" {
		b.WriteString("Spread risk: " + RiskStyle(analysis.SpreadRisk).Render(analysis.SpreadRisk) + "\n")
	}
	b.WriteString("\n")

	if analysis.ParseError {
		b.WriteString(DimStyle.Render("The analysis could not be fully structured; showing the raw result.") + "\n\n")
	}

	if analysis.Description != "" {
		b.WriteString(wordWrapWithIndent(analysis.Description, "", width) + "\n\n")
	}

	if len(analysis.Symptoms) > 0 {
		b.WriteString(TitleStyle.Render(a.dataModel.T("symptoms")) + "\n")
		for _, s := range analysis.Symptoms {
			b.WriteString(wordWrapWithIndent(s, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(analysis.Causes) > 0 {
		b.WriteString(TitleStyle.Render("Likely causes") + "\n")
		for _, c := range analysis.Causes {
			b.WriteString(wordWrapWithIndent(c, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(analysis.TreatmentOrganic) > 0 {
		header := lipgloss.NewStyle().Foreground(successColor).Bold(true)
		b.WriteString(header.Render("🌿 "+a.dataModel.T("organicTreatments")) + "\n")
		for _, method := range sortedKeys(analysis.TreatmentOrganic) {
			b.WriteString(wordWrapWithIndent(fmt.Sprintf("%s: %s", method, analysis.TreatmentOrganic[method]), "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	if len(analysis.TreatmentChemical) > 0 {
		header := lipgloss.NewStyle().Foreground(warningColor).Bold(true)
		b.WriteString(header.Render("🧪 "+a.dataModel.T("chemicalTreatments")) + "\n")
		keys := make([]string, 0, len(analysis.TreatmentChemical))
		for k := range analysis.TreatmentChemical {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t := analysis.TreatmentChemical[k]
			line := t.Name
			if line == "" {
				line = k
			}
			if t.Dosage != "" {
				line += ", " + t.Dosage
			}
			b.WriteString(wordWrapWithIndent(line, "  • ", width) + "\n")
			if t.Safety != "" {
				b.WriteString(DimStyle.Render(wordWrapWithIndent(t.Safety, "      ", width)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(analysis.PreventionTips) > 0 {
		b.WriteString(TitleStyle.Render(a.dataModel.T("prevention")) + "\n")
		for _, tip := range analysis.PreventionTips {
			b.WriteString(wordWrapWithIndent(tip, "  • ", width) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(DimStyle.Render(fmt.Sprintf("Alt+A %s  ·  Alt+R %s", a.dataModel.T("attachImage"), a.dataModel.T("retry"))) + "\n")

	return b.String()
}

// sortedKeys returns the map's keys in stable order for rendering.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
