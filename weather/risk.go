package weather

import (
	"math"

	"agriguard/api"
)

// SprayTime is the recommended application window for every qualifying
// spray day.
const SprayTime = "Early morning (6-9 AM) or evening (5-7 PM)"

// AnalyzeDiseaseRisk rates disease and pest pressure from current
// conditions. The thresholds follow published outbreak criteria for the
// common field diseases: fungal pathogens want humid 15-25 °C weather,
// bacterial ones warm and wet, most pests warm and dry.
func AnalyzeDiseaseRisk(w *api.CurrentWeather) *api.DiseaseRisk {
	risk := &api.DiseaseRisk{
		FungalDiseaseRisk:    "low",
		BacterialDiseaseRisk: "low",
		PestActivityRisk:     "low",
		SprayConditions:      "good",
		Alerts:               []string{},
		Recommendations:      []string{},
	}

	temp := w.Temperature
	humidity := w.Humidity
	precipitation := w.Precipitation
	windSpeed := w.WindSpeed

	// Fungal diseases (Late Blight, Powdery Mildew, ...)
	if humidity > 80 && temp >= 15 && temp <= 25 {
		risk.FungalDiseaseRisk = "high"
		risk.Alerts = append(risk.Alerts, "⚠️ High risk of fungal diseases (Late Blight, Powdery Mildew)")
		risk.Recommendations = append(risk.Recommendations, "Apply preventive fungicide spray")
	} else if humidity > 70 && temp >= 10 && temp <= 28 {
		risk.FungalDiseaseRisk = "medium"
		risk.Alerts = append(risk.Alerts, "Monitor for early signs of fungal infection")
	}

	// Bacterial diseases thrive warm and wet
	if temp > 25 && (humidity > 85 || precipitation > 5) {
		risk.BacterialDiseaseRisk = "high"
		risk.Alerts = append(risk.Alerts, "⚠️ Conditions favor bacterial diseases")
		risk.Recommendations = append(risk.Recommendations, "Avoid overhead irrigation")
	} else if temp > 20 && humidity > 75 {
		risk.BacterialDiseaseRisk = "medium"
	}

	// Warm, dry conditions favor many pests
	if temp > 25 && humidity < 60 {
		risk.PestActivityRisk = "high"
		risk.Alerts = append(risk.Alerts, "🐛 High pest activity expected (aphids, mites)")
		risk.Recommendations = append(risk.Recommendations, "Scout fields regularly for pest presence")
	} else if temp > 20 {
		risk.PestActivityRisk = "medium"
	}

	if windSpeed > 15 {
		risk.SprayConditions = "poor"
		risk.Alerts = append(risk.Alerts, "💨 Too windy for spraying - wait for calmer conditions")
	} else if precipitation > 0 {
		risk.SprayConditions = "poor"
		risk.Alerts = append(risk.Alerts, "🌧️ Rain expected - delay spraying")
	} else if humidity < 40 {
		risk.SprayConditions = "moderate"
		risk.Recommendations = append(risk.Recommendations, "Spray early morning or evening for better absorption")
	}

	avg := float64(levelScore(risk.FungalDiseaseRisk)+
		levelScore(risk.BacterialDiseaseRisk)+
		levelScore(risk.PestActivityRisk)) / 3

	risk.OverallRiskScore = int(math.Round(avg * 33.3))
	switch {
	case avg < 1.5:
		risk.OverallRiskLevel = "low"
	case avg < 2.5:
		risk.OverallRiskLevel = "medium"
	default:
		risk.OverallRiskLevel = "high"
	}

	return risk
}

func levelScore(level string) int {
	switch level {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

// OptimalSprayWindows picks the forecast days suitable for spraying:
// wind below 10 km/h and under 1 mm of rain. Moderate humidity upgrades
// a day from good to excellent because droplets neither evaporate
// mid-air nor sit wet on the leaf.
func OptimalSprayWindows(forecast []api.ForecastDay) []api.SprayWindow {
	windows := []api.SprayWindow{}

	for _, day := range forecast {
		if day.WindSpeed >= 10 || day.Precipitation >= 1 {
			continue
		}

		quality := "good"
		if day.Humidity > 50 && day.Humidity < 80 {
			quality = "excellent"
		}

		windows = append(windows, api.SprayWindow{
			Date:            day.Date,
			Quality:         quality,
			RecommendedTime: SprayTime,
			Conditions: api.SprayConditionDetail{
				WindSpeed:     day.WindSpeed,
				Precipitation: day.Precipitation,
				Humidity:      day.Humidity,
			},
		})
	}

	return windows
}
