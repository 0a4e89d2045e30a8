// Package agronomist implements the conversational advisor behind the
// chat endpoints. Farmer messages are routed by intent to the weather
// and IPM services or answered by the configured AI provider, with
// conversation history kept per session.
package agronomist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"agriguard/api"
	"agriguard/diagnosis"
	"agriguard/ipm"
	"agriguard/provider"
	"agriguard/weather"
)

const agronomistSystemPrompt = `You are AgriGuard AI, a friendly and knowledgeable agricultural advisor.
You help farmers with:
- Plant disease identification and treatment
- Pest management strategies
- Crop health optimization
- Weather-based farming advice
- Sustainable farming practices

Guidelines:
1. Be conversational and friendly - farmers should feel comfortable asking questions
2. Use simple language, avoid excessive jargon
3. Always provide actionable advice
4. When discussing treatments, mention BOTH organic and chemical options
5. Consider the farmer's context (location, crop type, season)
6. If unsure, ask clarifying questions
7. Prioritize sustainable, long-term solutions over quick fixes
8. Include safety warnings when discussing chemicals

You can analyze images of plants, leaves, and fields when provided.
You have access to weather data and can predict disease outbreaks.
You can create comprehensive IPM (Integrated Pest Management) strategies.

Respond naturally and helpfully. If the farmer sends an image, analyze it thoroughly.`

const (
	intentWeather = "weather"
	intentIPM     = "ipm"
	intentGeneral = "general"
)

var weatherKeywords = []string{"weather", "rain", "temperature", "humidity", "spray", "wind", "forecast"}

var ipmKeywords = []string{"ipm", "strategy", "plan", "treatment plan", "management plan", "long term"}

// Service answers farmer chat turns. Image turns run through the
// diagnosis pipeline, weather and IPM questions are recognized by
// keyword and answered from live data, everything else goes to the
// AI provider with the advisor system prompt.
type Service struct {
	ai        provider.Provider
	diagnosis *diagnosis.Service
	ipm       *ipm.Service
	weather   *weather.Client
	history   HistoryStore
}

func NewService(ai provider.Provider, diag *diagnosis.Service, ipmSvc *ipm.Service, weatherClient *weather.Client, history HistoryStore) *Service {
	return &Service{ai: ai, diagnosis: diag, ipm: ipmSvc, weather: weatherClient, history: history}
}

// ChatParams is one farmer turn plus the context the client sent with it.
type ChatParams struct {
	SessionID string
	Message   string
	ImageB64  string
	Latitude  *float64
	Longitude *float64
	CropType  string
	Language  string
}

// Chat answers one turn. The caller owns the session id and the wire
// envelope; the returned response carries message, analysis and
// follow-up material only.
func (s *Service) Chat(ctx context.Context, p ChatParams) (*api.ChatResponse, error) {
	if p.ImageB64 != "" {
		return s.imageChat(ctx, p)
	}
	return s.textChat(ctx, p)
}

// imageChat runs the diagnosis pipeline. Image turns are answered
// from the picture alone and are not added to the session history.
func (s *Service) imageChat(ctx context.Context, p ChatParams) (*api.ChatResponse, error) {
	question := p.Message
	if question == "" {
		question = "What's wrong with this plant?"
	}
	message, err := s.diagnosis.QuickDiagnosis(ctx, p.ImageB64, languageInstruction(p.Language)+" "+question)
	if err != nil {
		return nil, err
	}
	analysis, err := s.diagnosis.AnalyzeLeaf(ctx, p.ImageB64, p.CropType)
	if err != nil {
		return nil, err
	}

	resp := &api.ChatResponse{Message: message, Analysis: analysis}
	if analysis.DiseaseDetected {
		disease := analysis.DiseaseName
		if disease == "" {
			disease = "detected issue"
		}
		resp.Suggestions = []string{
			fmt.Sprintf("Would you like a detailed IPM strategy for %s?", disease),
			"Should I check the weather conditions for spraying?",
			"Want to see treatment options in detail?",
		}
		resp.ActionsAvailable = []api.Action{
			{Action: "get_ipm_strategy", Label: "Get Treatment Plan"},
			{Action: "check_weather", Label: "Check Spray Conditions"},
			{Action: "more_info", Label: "Learn More About This Disease"},
		}
	}
	return resp, nil
}

func (s *Service) textChat(ctx context.Context, p ChatParams) (*api.ChatResponse, error) {
	if err := s.history.Append(p.SessionID, provider.Message{Role: provider.RoleUser, Content: p.Message}); err != nil {
		return nil, err
	}

	switch detectIntent(p.Message) {
	case intentWeather:
		return s.weatherReply(ctx, p)
	case intentIPM:
		return &api.ChatResponse{
			Message:     "I can create a comprehensive pest management plan for you. What disease or pest are you dealing with? And what crop is affected?",
			Suggestions: []string{"Late Blight on tomatoes", "Aphids on vegetables", "Powdery Mildew on cucumbers"},
		}, nil
	}

	system := languageInstruction(p.Language) + "\n\n" + agronomistSystemPrompt
	history, err := s.history.History(p.SessionID)
	if err != nil {
		return nil, err
	}
	reply, err := s.ai.Chat(ctx, history, system)
	if err != nil {
		return nil, err
	}
	if err := s.history.Append(p.SessionID, provider.Message{Role: provider.RoleAssistant, Content: reply}); err != nil {
		return nil, err
	}
	return &api.ChatResponse{Message: reply}, nil
}

// weatherReply answers a weather question from live conditions, or
// asks for coordinates when the client did not send any.
func (s *Service) weatherReply(ctx context.Context, p ChatParams) (*api.ChatResponse, error) {
	if p.Latitude == nil || p.Longitude == nil {
		return &api.ChatResponse{
			Message:          "I'd love to check the weather for you! Could you share your location or enter your coordinates?",
			ActionsAvailable: []api.Action{{Action: "share_location", Label: "Share My Location"}},
		}, nil
	}

	current, err := s.weather.Current(ctx, *p.Latitude, *p.Longitude)
	if err != nil {
		return nil, err
	}
	risks := weather.AnalyzeDiseaseRisk(current)

	msg := fmt.Sprintf(`Current conditions at your location:
🌡️ Temperature: %s°C
💧 Humidity: %s%%
💨 Wind Speed: %s km/h
🌤️ Conditions: %s

Disease Risk Assessment:
- Fungal Disease Risk: %s
- Pest Activity Risk: %s
- Spray Conditions: %s

`, num(current.Temperature), num(current.Humidity), num(current.WindSpeed), current.Condition,
		risks.FungalDiseaseRisk, risks.PestActivityRisk, risks.SprayConditions)
	if len(risks.Alerts) > 0 {
		msg += "⚠️ Alerts:\n" + strings.Join(risks.Alerts, "\n")
	}
	return &api.ChatResponse{Message: msg}, nil
}

// IPMStrategyForChat generates a full strategy and condenses it into
// a markdown digest the chat view can render inline.
func (s *Service) IPMStrategyForChat(ctx context.Context, req api.IPMChatRequest) (*api.IPMChatResponse, error) {
	crop := req.Crop
	if crop == "" {
		crop = "general"
	}
	strategy, err := s.ipm.GenerateStrategy(ctx, api.IPMRequest{
		Disease:   req.Disease,
		Crop:      crop,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return nil, err
	}
	return &api.IPMChatResponse{
		Summary:      strategySummary(req.Disease, crop, strategy),
		FullStrategy: strategy,
		FollowUp:     "Would you like me to explain any of these in more detail, or check the best time to spray based on your local weather?",
	}, nil
}

// strategySummary condenses a strategy to its top actions and
// products so the digest stays readable on a phone screen.
func strategySummary(disease, crop string, strategy *api.IPMStrategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's your personalized treatment plan for **%s** in your %s crop:\n\n**🚨 Immediate Actions:**\n", disease, crop)
	for i, action := range strategy.ImmediateActions {
		if i == 3 {
			break
		}
		timing := action.Timing
		if timing == "" {
			timing = "ASAP"
		}
		fmt.Fprintf(&b, "- %s (%s)\n", action.Action, timing)
	}

	b.WriteString("\n**🌿 Organic Solutions:**\n")
	for i, solution := range strategy.OrganicSolutions {
		if i == 2 {
			break
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", solution.Product, solution.Application)
	}

	b.WriteString("\n**🧪 Chemical Options (if needed):**\n")
	for i, solution := range strategy.ChemicalSolutions {
		if i == 2 {
			break
		}
		wait := solution.SafetyPeriod
		if wait == "" {
			wait = "as directed"
		}
		fmt.Fprintf(&b, "- **%s**: %s (Wait %s before harvest)\n", solution.Product, solution.Dosage, wait)
	}

	if len(strategy.CompanionPlanting) > 0 {
		b.WriteString("\n**🌱 Companion Planting:**\n")
		for i, companion := range strategy.CompanionPlanting {
			if i == 2 {
				break
			}
			fmt.Fprintf(&b, "- Plant **%s** - %s\n", companion.Plant, companion.Benefit)
		}
	}
	return b.String()
}

// SessionInfo reports how much history a session has accumulated.
func (s *Service) SessionInfo(sessionID string) (*api.SessionInfo, error) {
	history, err := s.history.History(sessionID)
	if err != nil {
		return nil, err
	}
	return &api.SessionInfo{
		SessionID:    sessionID,
		MessageCount: len(history),
		HasHistory:   len(history) > 0,
	}, nil
}

// ClearHistory drops a session's conversation history.
func (s *Service) ClearHistory(sessionID string) error {
	return s.history.Clear(sessionID)
}

// detectIntent picks the reply path by keyword. Weather words win
// over IPM words so "best time to spray" checks conditions instead
// of opening a strategy dialogue.
func detectIntent(message string) string {
	lower := strings.ToLower(message)
	for _, keyword := range weatherKeywords {
		if strings.Contains(lower, keyword) {
			return intentWeather
		}
	}
	for _, keyword := range ipmKeywords {
		if strings.Contains(lower, keyword) {
			return intentIPM
		}
	}
	return intentGeneral
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
