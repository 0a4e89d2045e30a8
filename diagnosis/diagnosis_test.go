package diagnosis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agriguard/provider/testutil"
)

const leafReplyJSON = `Here is my assessment:
{
    "disease_detected": true,
    "disease_name": "Late Blight",
    "confidence": 0.92,
    "pest_type": null,
    "lifecycle_stage": "N/A",
    "urgency_level": "high",
    "description": "Dark water-soaked lesions on leaves with white mold on the undersides.",
    "affected_area_percentage": 35,
    "symptoms": ["dark lesions", "white mold", "leaf curling"],
    "causes": ["Phytophthora infestans", "prolonged leaf wetness"],
    "treatment_organic": {
        "product_1": "Copper fungicide sprayed every 7 days",
        "product_2": "Remove and destroy infected foliage"
    },
    "treatment_chemical": {
        "product_1": {"name": "Mancozeb", "dosage": "2.5 g/L", "safety": "Wear gloves and a mask"}
    },
    "prevention_tips": ["avoid overhead watering", "improve air circulation"],
    "spread_risk": "high"
}
Let me know if you need anything else.`

func TestAnalyzeLeafParsesModelJSON(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var gotPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		gotPrompt = prompt
		return leafReplyJSON, nil
	}

	svc := NewService(mock)
	result, err := svc.AnalyzeLeaf(context.Background(), "aGVsbG8=", "Crop: tomato. Leaves curling for a week")
	if err != nil {
		t.Fatalf("AnalyzeLeaf: %v", err)
	}

	if !result.DiseaseDetected {
		t.Error("DiseaseDetected = false, want true")
	}
	if result.DiseaseName != "Late Blight" {
		t.Errorf("DiseaseName = %q, want %q", result.DiseaseName, "Late Blight")
	}
	if result.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", result.Confidence)
	}
	if result.UrgencyLevel != "high" {
		t.Errorf("UrgencyLevel = %q, want %q", result.UrgencyLevel, "high")
	}
	if len(result.Symptoms) != 3 {
		t.Errorf("Symptoms length = %d, want 3", len(result.Symptoms))
	}
	if result.TreatmentChemical["product_1"].Dosage != "2.5 g/L" {
		t.Errorf("chemical dosage = %q", result.TreatmentChemical["product_1"].Dosage)
	}
	if result.ParseError {
		t.Error("ParseError = true for valid model JSON")
	}
	if result.RawAnalysis != leafReplyJSON {
		t.Error("RawAnalysis should carry the full model response")
	}

	if !strings.Contains(gotPrompt, "\n\nAdditional context from farmer: Crop: tomato. Leaves curling for a week") {
		t.Error("prompt should append the farmer context")
	}
}

func TestAnalyzeLeafFallback(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		return "The leaves look stressed but I cannot tell more.", nil
	}

	svc := NewService(mock)
	result, err := svc.AnalyzeLeaf(context.Background(), "aGVsbG8=", "")
	if err != nil {
		t.Fatalf("AnalyzeLeaf: %v", err)
	}

	if !result.ParseError {
		t.Error("ParseError = false, want true for prose output")
	}
	if result.DiseaseName != "Analysis Complete" {
		t.Errorf("DiseaseName = %q, want %q", result.DiseaseName, "Analysis Complete")
	}
	if result.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", result.Confidence)
	}
	if result.UrgencyLevel != "medium" {
		t.Errorf("UrgencyLevel = %q, want %q", result.UrgencyLevel, "medium")
	}
	if result.Description != "The leaves look stressed but I cannot tell more." {
		t.Errorf("Description = %q", result.Description)
	}
}

func TestAnalyzeLeafOmitsContextSuffixWhenEmpty(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var gotPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		gotPrompt = prompt
		return leafReplyJSON, nil
	}

	svc := NewService(mock)
	if _, err := svc.AnalyzeLeaf(context.Background(), "aGVsbG8=", ""); err != nil {
		t.Fatalf("AnalyzeLeaf: %v", err)
	}
	if strings.Contains(gotPrompt, "Additional context from farmer") {
		t.Error("prompt should not mention farmer context when none was given")
	}
}

func TestAnalyzeLeafPropagatesProviderError(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		return "", errors.New("model offline")
	}

	svc := NewService(mock)
	if _, err := svc.AnalyzeLeaf(context.Background(), "aGVsbG8=", ""); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestAnalyzeField(t *testing.T) {
	reply := `{
    "overall_health_score": 64,
    "analysis_type": "drone",
    "zones": [
        {"zone_id": "A1", "location": "northwest corner", "health_score": 40, "color_indicator": "yellow", "concerns": ["chlorosis"], "likely_cause": "nitrogen deficiency", "priority": "high"}
    ],
    "stress_indicators": {"water_stress": false, "nutrient_deficiency": true, "pest_damage": false, "disease_presence": false},
    "watering_priority_zones": [],
    "fertilization_zones": ["A1"],
    "immediate_actions": ["Soil test zone A1"],
    "recommendations": ["Apply nitrogen fertilizer to the northwest corner"],
    "estimated_affected_area": "15% of field"
}`
	mock := testutil.NewMockProvider("mock")
	var gotPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		gotPrompt = prompt
		return reply, nil
	}

	svc := NewService(mock)
	result, err := svc.AnalyzeField(context.Background(), "aGVsbG8=", "5 hectare wheat field")
	if err != nil {
		t.Fatalf("AnalyzeField: %v", err)
	}

	if result.OverallHealthScore != 64 {
		t.Errorf("OverallHealthScore = %v, want 64", result.OverallHealthScore)
	}
	if len(result.Zones) != 1 || result.Zones[0].ZoneID != "A1" {
		t.Errorf("Zones = %+v", result.Zones)
	}
	if result.StressIndicators == nil || !result.StressIndicators.NutrientDeficiency {
		t.Error("StressIndicators should flag nutrient deficiency")
	}
	if !strings.Contains(gotPrompt, "\n\nField information: 5 hectare wheat field") {
		t.Error("prompt should append the field information")
	}
}

func TestAnalyzeFieldFallback(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		return "The field looks mostly uniform with a dry patch to the east.", nil
	}

	svc := NewService(mock)
	result, err := svc.AnalyzeField(context.Background(), "aGVsbG8=", "")
	if err != nil {
		t.Fatalf("AnalyzeField: %v", err)
	}

	if !result.ParseError {
		t.Error("ParseError = false, want true")
	}
	if result.OverallHealthScore != 70 {
		t.Errorf("OverallHealthScore = %v, want 70", result.OverallHealthScore)
	}
	if len(result.Recommendations) != 1 || !strings.Contains(result.Recommendations[0], "dry patch") {
		t.Errorf("Recommendations = %v, want the raw response", result.Recommendations)
	}
	if len(result.Zones) != 0 {
		t.Errorf("Zones = %v, want empty", result.Zones)
	}
}

func TestQuickDiagnosis(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var gotPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		gotPrompt = prompt
		return "Those yellow spots are early blight. Start with neem oil.", nil
	}

	svc := NewService(mock)
	reply, err := svc.QuickDiagnosis(context.Background(), "aGVsbG8=", "Why are the leaves yellow?")
	if err != nil {
		t.Fatalf("QuickDiagnosis: %v", err)
	}

	if reply != "Those yellow spots are early blight. Start with neem oil." {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(gotPrompt, `asked: "Why are the leaves yellow?"`) {
		t.Error("prompt should quote the farmer's question")
	}
	if !strings.Contains(gotPrompt, "conversational manner") {
		t.Error("prompt should ask for a conversational reply")
	}
}

func TestKnownThreats(t *testing.T) {
	diseases, pests := KnownThreats("corn")
	if len(diseases) != 4 {
		t.Errorf("corn diseases = %d, want 4", len(diseases))
	}
	if len(pests) != 8 {
		t.Errorf("corn pests = %d, want 5 universal + 3 specific", len(pests))
	}

	diseases, pests = KnownThreats("banana")
	if diseases != nil {
		t.Errorf("unknown crop diseases = %v, want nil", diseases)
	}
	if len(pests) != 5 {
		t.Errorf("unknown crop pests = %d, want the universal 5", len(pests))
	}
}
