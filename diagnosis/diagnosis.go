// Package diagnosis identifies plant diseases, pests, and field
// health issues from images using the provider's vision models.
package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"agriguard/api"
	"agriguard/provider"
)

const diseaseDetectionPrompt = `You are an expert plant pathologist and entomologist AI assistant for farmers.
Analyze the provided plant/leaf image and identify any diseases, pests, or health issues.

Provide your analysis in the following JSON format:
{
    "disease_detected": true/false,
    "disease_name": "Name of disease or 'Healthy' if none",
    "confidence": 0.0-1.0,
    "pest_type": "Name of pest if applicable or null",
    "lifecycle_stage": "egg/larva/pupa/adult/N/A",
    "urgency_level": "low/medium/high/critical",
    "description": "Detailed description of what you observe",
    "affected_area_percentage": 0-100,
    "symptoms": ["list", "of", "visible", "symptoms"],
    "causes": ["possible", "causes"],
    "treatment_organic": {
        "product_1": "Description and application method",
        "product_2": "Description and application method"
    },
    "treatment_chemical": {
        "product_1": {"name": "Product name", "dosage": "X ml/L", "safety": "Safety precautions"},
        "product_2": {"name": "Product name", "dosage": "X ml/L", "safety": "Safety precautions"}
    },
    "prevention_tips": ["tip1", "tip2", "tip3"],
    "spread_risk": "low/medium/high"
}

Be specific about the disease/pest identification. If you're not certain, provide your best assessment with a lower confidence score.
Focus on actionable advice that farmers can implement immediately.`

const healthMapPrompt = `You are an expert agricultural analyst specializing in satellite and drone imagery analysis.
Analyze this field/farm image and create a health assessment.

Provide your analysis in the following JSON format:
{
    "overall_health_score": 0-100,
    "analysis_type": "satellite/drone/ground",
    "zones": [
        {
            "zone_id": "A1",
            "location": "description of location in image",
            "health_score": 0-100,
            "color_indicator": "green/yellow/brown/etc",
            "concerns": ["list of concerns"],
            "likely_cause": "what's causing the issue",
            "priority": "low/medium/high"
        }
    ],
    "stress_indicators": {
        "water_stress": true/false,
        "nutrient_deficiency": true/false,
        "pest_damage": true/false,
        "disease_presence": true/false
    },
    "watering_priority_zones": ["A1", "B2"],
    "fertilization_zones": ["zone ids needing fertilizer"],
    "immediate_actions": ["action 1", "action 2"],
    "recommendations": ["recommendation 1", "recommendation 2"],
    "estimated_affected_area": "X% of field"
}

Use visible color patterns to identify stress:
- Dark green = healthy
- Light green/yellow = possible nutrient deficiency or water stress
- Brown/dead patches = disease, pest damage, or severe stress
- Irregular patterns = pest infestation
- Uniform stress = environmental/irrigation issues`

const quickDiagnosisPrompt = `You are a friendly and knowledgeable agricultural advisor.
A farmer has sent you an image and asked: "%s"

Analyze the image and respond in a helpful, conversational manner.
Be specific about what you see and provide practical advice.
If you identify any issues, explain:
1. What the problem is
2. How serious it is
3. What they should do about it (both organic and chemical options)
4. How to prevent it in the future

Keep your response clear and farmer-friendly - avoid overly technical jargon.`

// jsonBlock grabs the outermost brace pair so prose around the model's
// JSON does not break parsing.
var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// Service analyzes plant and field images.
type Service struct {
	ai provider.Provider
}

// NewService creates a diagnosis service on the given provider.
func NewService(ai provider.Provider) *Service {
	return &Service{ai: ai}
}

// AnalyzeLeaf runs structured disease detection on a leaf or plant
// image. Extra context from the farmer (crop type, location, history)
// is appended to the prompt when present.
func (s *Service) AnalyzeLeaf(ctx context.Context, imageB64, farmerContext string) (*api.LeafAnalysis, error) {
	prompt := diseaseDetectionPrompt
	if farmerContext != "" {
		prompt += "\n\nAdditional context from farmer: " + farmerContext
	}

	response, err := s.ai.AnalyzeImage(ctx, imageB64, prompt)
	if err != nil {
		return nil, err
	}

	result := parseLeafResponse(response)
	result.RawAnalysis = response
	return result, nil
}

// AnalyzeField builds a zoned health map from satellite or drone
// imagery of a field.
func (s *Service) AnalyzeField(ctx context.Context, imageB64, fieldInfo string) (*api.FieldAnalysis, error) {
	prompt := healthMapPrompt
	if fieldInfo != "" {
		prompt += "\n\nField information: " + fieldInfo
	}

	response, err := s.ai.AnalyzeImage(ctx, imageB64, prompt)
	if err != nil {
		return nil, err
	}

	result := parseFieldResponse(response)
	result.RawAnalysis = response
	return result, nil
}

// QuickDiagnosis answers a free-form question about an image in plain
// conversational language rather than the structured format.
func (s *Service) QuickDiagnosis(ctx context.Context, imageB64, question string) (string, error) {
	return s.ai.AnalyzeImage(ctx, imageB64, fmt.Sprintf(quickDiagnosisPrompt, question))
}

func parseLeafResponse(response string) *api.LeafAnalysis {
	if block := jsonBlock.FindString(response); block != "" {
		var result api.LeafAnalysis
		if err := json.Unmarshal([]byte(block), &result); err == nil {
			return &result
		}
	}

	// The model ignored the format; hand the farmer the prose with a
	// neutral wrapper instead of failing the request.
	return &api.LeafAnalysis{
		DiseaseDetected:   true,
		DiseaseName:       "Analysis Complete",
		Confidence:        0.7,
		Description:       response,
		UrgencyLevel:      "medium",
		TreatmentOrganic:  map[string]string{},
		TreatmentChemical: map[string]api.ChemicalTreatment{},
		ParseError:        true,
	}
}

func parseFieldResponse(response string) *api.FieldAnalysis {
	if block := jsonBlock.FindString(response); block != "" {
		var result api.FieldAnalysis
		if err := json.Unmarshal([]byte(block), &result); err == nil {
			return &result
		}
	}

	return &api.FieldAnalysis{
		OverallHealthScore: 70,
		Zones:              []api.FieldZone{},
		Recommendations:    []string{response},
		ParseError:         true,
	}
}
