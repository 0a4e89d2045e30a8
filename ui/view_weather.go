package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderWeatherPane builds the weather tab: current field conditions, the
// derived disease risk, spray windows, the daily forecast and the outbreak
// prediction for the configured crop.
func (a AppView) renderWeatherPane() string {
	width := a.pane.Width - 2
	if width < 40 {
		width = 40
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("🌤 " + a.dataModel.T("weatherTitle")))
	b.WriteString("\n\n")

	if !a.dataModel.Config.HasLocation() {
		b.WriteString(wordWrapWithIndent(a.dataModel.T("noLocation"), "", width) + "\n\n")
		b.WriteString(DimStyle.Render("Alt+S opens the farm settings.") + "\n")
		return b.String()
	}

	if a.weatherLoading {
		b.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render(a.dataModel.T("loading"))))
		return b.String()
	}

	if a.weatherErr != nil {
		wrapped := wordWrapWithIndent("✗ "+a.weatherErr.Error(), "", width)
		b.WriteString(lipgloss.NewStyle().Foreground(dangerColor).Render(wrapped) + "\n\n")
		b.WriteString(DimStyle.Render("Alt+R "+a.dataModel.T("retry")) + "\n")
		return b.String()
	}

	if current := a.weatherCurrent; current != nil {
		if current.Condition != "" {
			b.WriteString(AssistantStyle.Render(current.Condition) + "\n")
		}
		b.WriteString(fmt.Sprintf("  %s: %.1f°C   %s: %.0f%%\n",
			a.dataModel.T("temperature"), current.Temperature,
			a.dataModel.T("humidity"), current.Humidity))
		b.WriteString(fmt.Sprintf("  %s: %.1f km/h   %s: %.1f mm\n",
			a.dataModel.T("windSpeed"), current.WindSpeed,
			a.dataModel.T("precipitation"), current.Precipitation))
		b.WriteString("\n")
	}

	if risk := a.weatherRisk; risk != nil {
		b.WriteString(TitleStyle.Render(a.dataModel.T("diseaseRisk")))
		if risk.OverallRiskLevel != "" {
			b.WriteString("  " + RiskStyle(risk.OverallRiskLevel).Render(fmt.Sprintf("%s (%d/100)", risk.OverallRiskLevel, risk.OverallRiskScore)))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s: %s   %s: %s   %s: %s\n",
			a.dataModel.T("fungalRisk"), RiskStyle(risk.FungalDiseaseRisk).Render(risk.FungalDiseaseRisk),
			a.dataModel.T("bacterialRisk"), RiskStyle(risk.BacterialDiseaseRisk).Render(risk.BacterialDiseaseRisk),
			a.dataModel.T("pestRisk"), RiskStyle(risk.PestActivityRisk).Render(risk.PestActivityRisk)))
		b.WriteString(fmt.Sprintf("  %s: %s\n", a.dataModel.T("sprayConditions"), RiskStyle(risk.SprayConditions).Render(risk.SprayConditions)))
		for _, alert := range risk.Alerts {
			b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render(wordWrapWithIndent("⚠ "+alert, "  ", width)) + "\n")
		}
		for _, rec := range risk.Recommendations {
			b.WriteString(DimStyle.Render(wordWrapWithIndent(rec, "  · ", width)) + "\n")
		}
		b.WriteString("\n")
	}

	if windows := a.sprayWindows; windows != nil {
		b.WriteString(TitleStyle.Render(a.dataModel.T("sprayWindows")))
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %d good days ahead", windows.TotalGoodDays)))
		b.WriteString("\n")
		if len(windows.OptimalWindows) == 0 {
			b.WriteString(DimStyle.Render("  No favorable windows in the forecast.") + "\n")
		}
		for _, w := range windows.OptimalWindows {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				w.Date,
				RiskStyle(w.Quality).Render(fmt.Sprintf("%-9s", w.Quality)),
				DimStyle.Render(w.RecommendedTime)))
		}
		b.WriteString("\n")
	}

	if forecast := a.weatherForecast; forecast != nil && len(forecast.Forecast) > 0 {
		b.WriteString(TitleStyle.Render("Forecast") + "\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %-12s %12s %8s %6s %8s", "Date", "Temp", "Rain", "Hum", "Wind")) + "\n")
		for _, day := range forecast.Forecast {
			b.WriteString(fmt.Sprintf("  %-12s %4.0f°/%4.0f° %6.1fmm %5.0f%% %6.0fkm/h\n",
				day.Date, day.TempMin, day.TempMax, day.Precipitation, day.Humidity, day.WindSpeed))
		}
		b.WriteString("\n")
	}

	if outbreak := a.outbreak; outbreak != nil {
		b.WriteString(TitleStyle.Render("Outbreak forecast"))
		if outbreak.Crop != "" {
			b.WriteString(DimStyle.Render("  " + outbreak.Crop))
		}
		if outbreak.OverallOutlook != "" {
			b.WriteString("  " + RiskStyle(outbreak.OverallOutlook).Render(outbreak.OverallOutlook))
		}
		b.WriteString("\n")
		for _, day := range outbreak.DailyRisks {
			bar := riskBar(day.RiskScore)
			line := fmt.Sprintf("  %-12s %s %3d %s", day.Date, bar, day.RiskScore, RiskStyle(day.RiskLevel).Render(day.RiskLevel))
			if len(day.DiseasesAtRisk) > 0 {
				line += DimStyle.Render("  " + strings.Join(day.DiseasesAtRisk, ", "))
			}
			b.WriteString(line + "\n")
		}
		for _, rec := range outbreak.Recommendations {
			b.WriteString(wordWrapWithIndent(rec, "  ", width) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(DimStyle.Render("Alt+R "+a.dataModel.T("refresh")) + "\n")

	return b.String()
}

// riskBar renders a 0-100 score as a ten segment bar.
func riskBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score / 10
	level := "low"
	if score >= 60 {
		level = "high"
	} else if score >= 30 {
		level = "medium"
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return RiskStyle(level).Render(bar)
}
