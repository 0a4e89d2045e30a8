// Package ipm generates integrated pest management strategies,
// outbreak predictions, and quick treatment recommendations.
package ipm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"agriguard/api"
	"agriguard/provider"
	"agriguard/weather"
)

const strategyPrompt = `You are an expert integrated pest management (IPM) specialist.
Generate a comprehensive, sustainable pest management strategy based on the following information.

Disease/Pest Detected: {disease}
Crop Type: {crop}
Location Weather: {weather}
Field Context: {context}

Provide your IPM strategy in the following JSON format:
{
    "strategy_name": "Name of the strategy",
    "disease_pest": "{disease}",
    "risk_assessment": {
        "current_severity": "low/medium/high/critical",
        "spread_risk": "low/medium/high",
        "yield_impact_if_untreated": "X% potential loss"
    },
    "immediate_actions": [
        {
            "action": "What to do",
            "timing": "When to do it",
            "priority": "high/medium/low"
        }
    ],
    "weekly_plan": [
        {
            "week": 1,
            "actions": ["action 1", "action 2"],
            "monitoring": "What to monitor",
            "expected_outcome": "What should improve"
        },
        {
            "week": 2,
            "actions": ["action 1"],
            "monitoring": "What to monitor",
            "expected_outcome": "Expected improvement"
        }
    ],
    "organic_solutions": [
        {
            "product": "Product name",
            "application": "How to apply",
            "frequency": "How often",
            "effectiveness": "Expected effectiveness %"
        }
    ],
    "chemical_solutions": [
        {
            "product": "Product name",
            "active_ingredient": "Chemical name",
            "dosage": "X ml/L or g/L",
            "safety_period": "Days before harvest",
            "safety_precautions": ["precaution 1", "precaution 2"]
        }
    ],
    "companion_planting": [
        {
            "plant": "Plant name",
            "benefit": "How it helps",
            "placement": "Where to plant"
        }
    ],
    "biological_controls": [
        {
            "organism": "Beneficial organism",
            "target_pest": "What it controls",
            "application": "How to introduce"
        }
    ],
    "cultural_practices": [
        "Practice 1: Description",
        "Practice 2: Description"
    ],
    "monitoring_schedule": {
        "frequency": "Daily/Weekly/Bi-weekly",
        "what_to_check": ["symptom 1", "symptom 2"],
        "action_thresholds": "When to take action"
    },
    "prevention_for_next_season": [
        "Preventive measure 1",
        "Preventive measure 2"
    ],
    "weather_considerations": {
        "spray_timing": "Best conditions for spraying",
        "outbreak_risk_factors": ["factor 1", "factor 2"]
    },
    "success_metrics": {
        "week_1_target": "Expected improvement",
        "week_4_target": "Disease should be controlled",
        "season_end_goal": "Full recovery"
    }
}

Make the strategy practical, sustainable, and farmer-friendly. Prioritize organic solutions but include chemical options for severe cases.`

const weatherBlock = `
                Temperature: %s°C
                Humidity: %s%%
                Conditions: %s
                Disease Risk: %s
                `

const quickRecommendationPrompt = `A farmer has detected %s in their %s crop.

Give a brief, friendly recommendation covering:
1. How serious is this? (1 sentence)
2. What should they do RIGHT NOW? (2-3 bullet points)
3. One organic solution and one chemical solution
4. How to prevent this in the future (1-2 tips)

Keep it concise and practical.`

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// Service builds pest management plans from the AI provider and
// weather conditions.
type Service struct {
	ai      provider.Provider
	weather *weather.Client
}

// NewService creates an IPM service.
func NewService(ai provider.Provider, weatherClient *weather.Client) *Service {
	return &Service{ai: ai, weather: weatherClient}
}

// GenerateStrategy produces a full IPM strategy for a disease. With
// coordinates the current conditions feed the prompt and the result is
// enriched with the risk assessment and the top three spray windows.
// Weather failures degrade to a strategy without enrichment.
func (s *Service) GenerateStrategy(ctx context.Context, req api.IPMRequest) (*api.IPMStrategy, error) {
	crop := req.Crop
	if crop == "" {
		crop = "general"
	}

	weatherInfo := "Not available"
	var risks *api.DiseaseRisk
	var windows []api.SprayWindow

	if req.Latitude != nil && req.Longitude != nil {
		current, err := s.weather.Current(ctx, *req.Latitude, *req.Longitude)
		if err == nil {
			risks = weather.AnalyzeDiseaseRisk(current)
			weatherInfo = fmt.Sprintf(weatherBlock,
				num(current.Temperature), num(current.Humidity),
				current.Condition, risks.OverallRiskLevel)

			windows = []api.SprayWindow{}
			if forecast, err := s.weather.Forecast(ctx, *req.Latitude, *req.Longitude, 7); err == nil {
				windows = weather.OptimalSprayWindows(forecast.Forecast)
			}
		}
	}

	prompt := strings.NewReplacer(
		"{disease}", req.Disease,
		"{crop}", crop,
		"{weather}", weatherInfo,
		"{context}", req.Context,
	).Replace(strategyPrompt)

	response, err := s.ai.Generate(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	strategy := parseStrategyResponse(response)
	if risks != nil {
		strategy.WeatherAnalysis = risks
		if len(windows) > 3 {
			windows = windows[:3]
		}
		strategy.OptimalSprayWindows = windows
	}
	if len(strategy.CompanionPlanting) == 0 {
		strategy.CompanionPlanting = companionPlants(crop)
	}

	return strategy, nil
}

// QuickRecommendation answers with a short conversational treatment
// plan instead of the structured strategy.
func (s *Service) QuickRecommendation(ctx context.Context, disease, crop string) (string, error) {
	if crop == "" {
		crop = "general"
	}
	return s.ai.Generate(ctx, fmt.Sprintf(quickRecommendationPrompt, disease, crop), "")
}

// PredictOutbreak scores each forecast day for disease pressure and
// summarizes the week's outlook.
func (s *Service) PredictOutbreak(ctx context.Context, lat, lon float64, crop string) (*api.OutbreakForecast, error) {
	forecast, err := s.weather.Forecast(ctx, lat, lon, 7)
	if err != nil {
		return nil, err
	}

	dailyRisks := make([]api.DailyRisk, 0, len(forecast.Forecast))
	for _, day := range forecast.Forecast {
		temp := (day.TempMax + day.TempMin) / 2
		humidity := day.Humidity
		rain := day.Precipitation

		score := 0
		factors := []string{}

		if humidity > 80 {
			score += 30
			factors = append(factors, "High humidity")
		} else if humidity > 70 {
			score += 15
		}
		if temp >= 15 && temp <= 25 {
			score += 20
			factors = append(factors, "Optimal fungal growth temperature")
		}
		if rain > 5 {
			score += 25
			factors = append(factors, "Significant rainfall")
		} else if rain > 0 {
			score += 10
		}

		level := "low"
		if score >= 60 {
			level = "high"
		} else if score >= 30 {
			level = "medium"
		}

		dailyRisks = append(dailyRisks, api.DailyRisk{
			Date:           day.Date,
			RiskScore:      min(score, 100),
			RiskLevel:      level,
			Factors:        factors,
			DiseasesAtRisk: diseasesAtRisk(temp, humidity, rain),
		})
	}

	peakRiskDays := []api.DailyRisk{}
	for _, d := range dailyRisks {
		if d.RiskLevel == "high" {
			peakRiskDays = append(peakRiskDays, d)
		}
	}

	outlook := "favorable"
	if len(peakRiskDays) >= 3 {
		outlook = "high_alert"
	} else if len(peakRiskDays) >= 1 {
		outlook = "moderate"
	}

	return &api.OutbreakForecast{
		Crop:            crop,
		Location:        api.Location{Latitude: lat, Longitude: lon},
		DailyRisks:      dailyRisks,
		PeakRiskDays:    peakRiskDays,
		OverallOutlook:  outlook,
		Recommendations: predictiveRecommendations(dailyRisks),
	}, nil
}

func parseStrategyResponse(response string) *api.IPMStrategy {
	if block := jsonBlock.FindString(response); block != "" {
		var strategy api.IPMStrategy
		if err := json.Unmarshal([]byte(block), &strategy); err == nil {
			return &strategy
		}
	}

	return &api.IPMStrategy{
		StrategyName:     "Generated Strategy",
		RawStrategy:      response,
		ImmediateActions: []api.ImmediateAction{{Action: "See detailed analysis", Priority: "high"}},
		ParseError:       true,
	}
}

func companionPlants(crop string) []api.CompanionPlant {
	switch strings.ToLower(crop) {
	case "tomato":
		return []api.CompanionPlant{
			{Plant: "Basil", Benefit: "Repels aphids, whiteflies, and improves flavor", Placement: "Interplant every 2-3 tomato plants"},
			{Plant: "Marigold", Benefit: "Deters nematodes, whiteflies, and many pests", Placement: "Border planting around field"},
			{Plant: "Garlic", Benefit: "Natural fungicide, repels spider mites", Placement: "Interplant throughout"},
		}
	case "potato":
		return []api.CompanionPlant{
			{Plant: "Horseradish", Benefit: "Deters potato beetles", Placement: "Corners of the field"},
			{Plant: "Marigold", Benefit: "Reduces nematode population", Placement: "Border rows"},
		}
	case "corn":
		return []api.CompanionPlant{
			{Plant: "Beans", Benefit: "Fixes nitrogen, supports corn stalks", Placement: "Three Sisters method"},
			{Plant: "Squash", Benefit: "Shades soil, deters raccoons", Placement: "Three Sisters method"},
		}
	default:
		return []api.CompanionPlant{
			{Plant: "Marigold", Benefit: "General pest deterrent", Placement: "Field borders"},
			{Plant: "Nasturtium", Benefit: "Trap crop for aphids", Placement: "Field edges"},
		}
	}
}

func diseasesAtRisk(temp, humidity, rain float64) []string {
	diseases := []string{}

	if humidity > 80 && temp >= 15 && temp <= 25 {
		diseases = append(diseases, "Late Blight", "Downy Mildew", "Powdery Mildew")
	}
	if temp > 25 && humidity > 70 {
		diseases = append(diseases, "Bacterial Spot", "Bacterial Wilt")
	}
	if rain > 10 {
		diseases = append(diseases, "Root Rot", "Damping Off")
	}
	if humidity < 50 && temp > 25 {
		diseases = append(diseases, "Spider Mite infestation", "Aphid outbreak")
	}

	if len(diseases) > 4 {
		diseases = diseases[:4]
	}
	return diseases
}

func predictiveRecommendations(dailyRisks []api.DailyRisk) []string {
	recommendations := []string{}

	highRiskCount := 0
	for _, d := range dailyRisks {
		if d.RiskLevel == "high" {
			highRiskCount++
		}
	}

	if highRiskCount >= 3 {
		recommendations = append(recommendations,
			"🚨 HIGH ALERT: Apply preventive fungicide treatment immediately",
			"Increase field monitoring to daily inspections")
	} else if highRiskCount >= 1 {
		recommendations = append(recommendations,
			"⚠️ Apply preventive organic treatment (neem oil or copper spray)",
			"Monitor closely for early disease symptoms")
	}

	rainAhead := false
	for _, d := range dailyRisks {
		for _, f := range d.Factors {
			if strings.Contains(strings.ToLower(f), "rainfall") {
				rainAhead = true
			}
		}
	}
	if rainAhead {
		recommendations = append(recommendations,
			"Ensure proper drainage before rainfall",
			"Apply treatments before rain, not after")
	}

	recommendations = append(recommendations, "Remove any diseased plant material immediately")
	return recommendations
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
