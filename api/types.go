package api

// Health is the /health liveness payload.
type Health struct {
	Status      string            `json:"status"`
	AIProviders map[string]string `json:"ai_providers"`
}

// AIStatus describes the backend's AI provider fleet.
type AIStatus struct {
	PrimaryProvider string         `json:"primary_provider"`
	Ollama          OllamaStatus   `json:"ollama"`
	Groq            ProviderStatus `json:"groq"`
	Gemini          ProviderStatus `json:"gemini"`
}

type OllamaStatus struct {
	Status      string   `json:"status"`
	Models      []string `json:"models"`
	VisionModel string   `json:"vision_model"`
	LLMModel    string   `json:"llm_model"`
}

type ProviderStatus struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ChatRequest is the body for POST /chat/message. Latitude and
// Longitude are pointers so an unset location is omitted rather than
// sent as 0,0.
type ChatRequest struct {
	Message   string   `json:"message"`
	SessionID string   `json:"session_id,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	CropType  string   `json:"crop_type,omitempty"`
	Language  string   `json:"language"`
}

// Action is a follow-up the backend offers after a reply.
type Action struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// ChatResponse is the reply for both chat endpoints.
type ChatResponse struct {
	Status           string        `json:"status"`
	SessionID        string        `json:"session_id"`
	Message          string        `json:"message"`
	Analysis         *LeafAnalysis `json:"analysis,omitempty"`
	Suggestions      []string      `json:"suggestions,omitempty"`
	ActionsAvailable []Action      `json:"actions_available,omitempty"`
}

// ChemicalTreatment is one chemical product recommendation.
type ChemicalTreatment struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Safety string `json:"safety"`
}

// LeafAnalysis is the structured disease detection result. When the
// model output cannot be parsed the backend degrades to a fixed
// fallback with ParseError set and the raw text in Description.
type LeafAnalysis struct {
	DiseaseDetected        bool                         `json:"disease_detected"`
	DiseaseName            string                       `json:"disease_name"`
	Confidence             float64                      `json:"confidence"`
	PestType               string                       `json:"pest_type,omitempty"`
	LifecycleStage         string                       `json:"lifecycle_stage,omitempty"`
	UrgencyLevel           string                       `json:"urgency_level"`
	Description            string                       `json:"description"`
	AffectedAreaPercentage float64                      `json:"affected_area_percentage,omitempty"`
	Symptoms               []string                     `json:"symptoms,omitempty"`
	Causes                 []string                     `json:"causes,omitempty"`
	TreatmentOrganic       map[string]string            `json:"treatment_organic,omitempty"`
	TreatmentChemical      map[string]ChemicalTreatment `json:"treatment_chemical,omitempty"`
	PreventionTips         []string                     `json:"prevention_tips,omitempty"`
	SpreadRisk             string                       `json:"spread_risk,omitempty"`
	RawAnalysis            string                       `json:"raw_analysis,omitempty"`
	ParseError             bool                         `json:"parse_error,omitempty"`
}

// QuickAnalysis is the conversational diagnosis reply.
type QuickAnalysis struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// FieldZone is one zone of a field health map.
type FieldZone struct {
	ZoneID         string   `json:"zone_id"`
	Location       string   `json:"location"`
	HealthScore    float64  `json:"health_score"`
	ColorIndicator string   `json:"color_indicator"`
	Concerns       []string `json:"concerns,omitempty"`
	LikelyCause    string   `json:"likely_cause,omitempty"`
	Priority       string   `json:"priority,omitempty"`
}

type StressIndicators struct {
	WaterStress        bool `json:"water_stress"`
	NutrientDeficiency bool `json:"nutrient_deficiency"`
	PestDamage         bool `json:"pest_damage"`
	DiseasePresence    bool `json:"disease_presence"`
}

// FieldAnalysis is the health map produced from field imagery.
type FieldAnalysis struct {
	OverallHealthScore    float64           `json:"overall_health_score"`
	AnalysisType          string            `json:"analysis_type,omitempty"`
	Zones                 []FieldZone       `json:"zones"`
	StressIndicators      *StressIndicators `json:"stress_indicators,omitempty"`
	WateringPriorityZones []string          `json:"watering_priority_zones,omitempty"`
	FertilizationZones    []string          `json:"fertilization_zones,omitempty"`
	ImmediateActions      []string          `json:"immediate_actions,omitempty"`
	Recommendations       []string          `json:"recommendations,omitempty"`
	EstimatedAffectedArea string            `json:"estimated_affected_area,omitempty"`
	RawAnalysis           string            `json:"raw_analysis,omitempty"`
	ParseError            bool              `json:"parse_error,omitempty"`
}

// CurrentWeather is the /weather/current payload.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	WeatherCode   int     `json:"weather_code"`
	Condition     string  `json:"condition"`
	Timestamp     string  `json:"timestamp"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastDay is one day of the daily forecast.
type ForecastDay struct {
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	WeatherCode   int     `json:"weather_code"`
}

type Forecast struct {
	Location    Location      `json:"location"`
	Forecast    []ForecastDay `json:"forecast"`
	GeneratedAt string        `json:"generated_at"`
}

// DiseaseRisk is the weather-derived risk assessment.
type DiseaseRisk struct {
	FungalDiseaseRisk    string   `json:"fungal_disease_risk"`
	BacterialDiseaseRisk string   `json:"bacterial_disease_risk"`
	PestActivityRisk     string   `json:"pest_activity_risk"`
	SprayConditions      string   `json:"spray_conditions"`
	Alerts               []string `json:"alerts"`
	Recommendations      []string `json:"recommendations"`
	OverallRiskScore     int      `json:"overall_risk_score"`
	OverallRiskLevel     string   `json:"overall_risk_level"`
}

type SprayConditionDetail struct {
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
}

// SprayWindow is one forecast day judged favorable for spraying.
type SprayWindow struct {
	Date            string               `json:"date"`
	Quality         string               `json:"quality"`
	RecommendedTime string               `json:"recommended_time"`
	Conditions      SprayConditionDetail `json:"conditions"`
}

type SprayWindows struct {
	OptimalWindows []SprayWindow `json:"optimal_windows"`
	TotalGoodDays  int           `json:"total_good_days"`
}

// IPMRequest is the body for POST /ipm/strategy.
type IPMRequest struct {
	Disease   string   `json:"disease"`
	Crop      string   `json:"crop"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Context   string   `json:"context,omitempty"`
}

type RiskAssessment struct {
	CurrentSeverity        string `json:"current_severity"`
	SpreadRisk             string `json:"spread_risk"`
	YieldImpactIfUntreated string `json:"yield_impact_if_untreated"`
}

type ImmediateAction struct {
	Action   string `json:"action"`
	Timing   string `json:"timing"`
	Priority string `json:"priority"`
}

type WeekPlan struct {
	Week            int      `json:"week"`
	Actions         []string `json:"actions"`
	Monitoring      string   `json:"monitoring"`
	ExpectedOutcome string   `json:"expected_outcome"`
}

type OrganicSolution struct {
	Product       string `json:"product"`
	Application   string `json:"application"`
	Frequency     string `json:"frequency"`
	Effectiveness string `json:"effectiveness"`
}

type ChemicalSolution struct {
	Product           string   `json:"product"`
	ActiveIngredient  string   `json:"active_ingredient"`
	Dosage            string   `json:"dosage"`
	SafetyPeriod      string   `json:"safety_period"`
	SafetyPrecautions []string `json:"safety_precautions"`
}

type CompanionPlant struct {
	Plant     string `json:"plant"`
	Benefit   string `json:"benefit"`
	Placement string `json:"placement"`
}

type BiologicalControl struct {
	Organism    string `json:"organism"`
	TargetPest  string `json:"target_pest"`
	Application string `json:"application"`
}

type MonitoringSchedule struct {
	Frequency        string   `json:"frequency"`
	WhatToCheck      []string `json:"what_to_check"`
	ActionThresholds string   `json:"action_thresholds"`
}

type WeatherConsiderations struct {
	SprayTiming         string   `json:"spray_timing"`
	OutbreakRiskFactors []string `json:"outbreak_risk_factors"`
}

type SuccessMetrics struct {
	Week1Target   string `json:"week_1_target"`
	Week4Target   string `json:"week_4_target"`
	SeasonEndGoal string `json:"season_end_goal"`
}

// IPMStrategy is the full management plan. WeatherAnalysis and
// OptimalSprayWindows are filled in server-side when coordinates were
// given; RawStrategy carries unparseable model output.
type IPMStrategy struct {
	StrategyName            string                 `json:"strategy_name"`
	DiseasePest             string                 `json:"disease_pest,omitempty"`
	RiskAssessment          *RiskAssessment        `json:"risk_assessment,omitempty"`
	ImmediateActions        []ImmediateAction      `json:"immediate_actions,omitempty"`
	WeeklyPlan              []WeekPlan             `json:"weekly_plan,omitempty"`
	OrganicSolutions        []OrganicSolution      `json:"organic_solutions,omitempty"`
	ChemicalSolutions       []ChemicalSolution     `json:"chemical_solutions,omitempty"`
	CompanionPlanting       []CompanionPlant       `json:"companion_planting,omitempty"`
	BiologicalControls      []BiologicalControl    `json:"biological_controls,omitempty"`
	CulturalPractices       []string               `json:"cultural_practices,omitempty"`
	MonitoringSchedule      *MonitoringSchedule    `json:"monitoring_schedule,omitempty"`
	PreventionForNextSeason []string               `json:"prevention_for_next_season,omitempty"`
	WeatherConsiderations   *WeatherConsiderations `json:"weather_considerations,omitempty"`
	SuccessMetrics          *SuccessMetrics        `json:"success_metrics,omitempty"`
	WeatherAnalysis         *DiseaseRisk           `json:"weather_analysis,omitempty"`
	OptimalSprayWindows     []SprayWindow          `json:"optimal_spray_windows,omitempty"`
	RawStrategy             string                 `json:"raw_strategy,omitempty"`
	ParseError              bool                   `json:"parse_error,omitempty"`
}

// IPMChatRequest asks for a strategy formatted for the chat transcript.
type IPMChatRequest struct {
	SessionID string   `json:"session_id"`
	Disease   string   `json:"disease"`
	Crop      string   `json:"crop"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type IPMChatResponse struct {
	Status       string       `json:"status"`
	Summary      string       `json:"summary"`
	FullStrategy *IPMStrategy `json:"full_strategy"`
	FollowUp     string       `json:"follow_up"`
}

type QuickRecommendation struct {
	Status         string `json:"status"`
	Disease        string `json:"disease"`
	Crop           string `json:"crop"`
	Recommendation string `json:"recommendation"`
}

// DailyRisk is one day of the outbreak prediction.
type DailyRisk struct {
	Date           string   `json:"date"`
	RiskScore      int      `json:"risk_score"`
	RiskLevel      string   `json:"risk_level"`
	Factors        []string `json:"factors"`
	DiseasesAtRisk []string `json:"diseases_at_risk"`
}

type OutbreakForecast struct {
	Crop            string      `json:"crop"`
	Location        Location    `json:"location"`
	DailyRisks      []DailyRisk `json:"daily_risks"`
	PeakRiskDays    []DailyRisk `json:"peak_risk_days"`
	OverallOutlook  string      `json:"overall_outlook"`
	Recommendations []string    `json:"recommendations"`
}

// DiseaseInfo is one preset entry of the disease reference database.
type DiseaseInfo struct {
	Name       string   `json:"name"`
	Crops      []string `json:"crops"`
	Organic    []string `json:"organic"`
	Chemical   []string `json:"chemical"`
	Prevention []string `json:"prevention"`
}

type DiseaseDatabase struct {
	Status   string                 `json:"status"`
	Diseases []string               `json:"diseases"`
	Data     map[string]DiseaseInfo `json:"data"`
}

type SessionInfo struct {
	Status       string `json:"status"`
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	HasHistory   bool   `json:"has_history"`
}

type Transcription struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}
