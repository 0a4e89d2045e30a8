package agronomist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agriguard/api"
	"agriguard/diagnosis"
	"agriguard/ipm"
	"agriguard/provider"
	"agriguard/provider/testutil"
	"agriguard/weather"
)

const leafReply = `{
    "disease_detected": true,
    "disease_name": "Early Blight",
    "confidence": 0.88,
    "urgency_level": "high",
    "description": "Concentric brown rings on the lower leaves."
}`

const healthyLeafReply = `{
    "disease_detected": false,
    "disease_name": "",
    "confidence": 0.95,
    "urgency_level": "low",
    "description": "Foliage looks healthy."
}`

const strategyReply = `{
    "strategy_name": "Late Blight Containment Plan",
    "immediate_actions": [
        {"action": "Remove infected leaves", "timing": "", "priority": "high"},
        {"action": "Apply copper fungicide", "timing": "Within 24 hours", "priority": "high"},
        {"action": "Improve air circulation", "timing": "This week", "priority": "medium"},
        {"action": "Stake plants", "timing": "This week", "priority": "low"}
    ],
    "organic_solutions": [
        {"product": "Copper fungicide", "application": "Spray all foliage", "frequency": "Every 7 days", "effectiveness": "high"},
        {"product": "Baking soda spray", "application": "Mist affected areas", "frequency": "Every 5 days", "effectiveness": "medium"},
        {"product": "Neem oil", "application": "Evening spray", "frequency": "Weekly", "effectiveness": "medium"}
    ],
    "chemical_solutions": [
        {"product": "Mancozeb", "active_ingredient": "mancozeb", "dosage": "2g per liter", "safety_period": "", "safety_precautions": ["Wear gloves"]},
        {"product": "Chlorothalonil", "active_ingredient": "chlorothalonil", "dosage": "1.5ml per liter", "safety_period": "7 days", "safety_precautions": ["Avoid windy days"]}
    ]
}`

func newTestService(mock *testutil.MockProvider, weatherBase string) (*Service, *MemoryHistory) {
	history := NewMemoryHistory()
	weatherClient := weather.NewClient(weatherBase)
	svc := NewService(mock, diagnosis.NewService(mock), ipm.NewService(mock, weatherClient), weatherClient, history)
	return svc, history
}

func fakeWeather(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"current":{"temperature_2m":22.5,"relative_humidity_2m":85,"precipitation":0,"wind_speed_10m":12,"weather_code":3}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Will it rain tomorrow?", intentWeather},
		{"Is it a good day to SPRAY?", intentWeather},
		{"What's the forecast looking like", intentWeather},
		{"I need a treatment plan for late blight", intentIPM},
		{"Give me a long term strategy", intentIPM},
		{"My tomato leaves have brown spots", intentGeneral},
		{"", intentGeneral},
		// Weather words outrank IPM words in mixed questions.
		{"plan my spraying for the week", intentWeather},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := detectIntent(tt.message); got != tt.want {
				t.Errorf("detectIntent(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestLanguageInstruction(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en-US", "IMPORTANT: Respond in English. The user speaks English."},
		{"hi-IN", "IMPORTANT: Respond in Hindi. The user speaks Hindi."},
		{"zh-CN", "IMPORTANT: Respond in Chinese (Simplified). The user speaks Chinese (Simplified)."},
		{"xx-XX", "IMPORTANT: Respond in English. The user speaks English."},
		{"", "IMPORTANT: Respond in English. The user speaks English."},
	}

	for _, tt := range tests {
		if got := languageInstruction(tt.code); got != tt.want {
			t.Errorf("languageInstruction(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestChatGeneralKeepsHistory(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var gotMessages []provider.Message
	var gotSystem string
	mock.ChatFunc = func(ctx context.Context, messages []provider.Message, system string) (string, error) {
		gotMessages = messages
		gotSystem = system
		return "Try a copper-based spray in the evening.", nil
	}
	service, history := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "My tomato leaves have brown spots",
		Language:  "hi-IN",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Message != "Try a copper-based spray in the evening." {
		t.Errorf("Message = %q", resp.Message)
	}
	if len(gotMessages) != 1 || gotMessages[0].Role != provider.RoleUser {
		t.Fatalf("provider saw %+v, want the single user turn", gotMessages)
	}
	wantPrefix := "IMPORTANT: Respond in Hindi. The user speaks Hindi.\n\nYou are AgriGuard AI"
	if !strings.HasPrefix(gotSystem, wantPrefix) {
		t.Errorf("system prompt = %q, want prefix %q", gotSystem, wantPrefix)
	}

	stored, _ := history.History("s1")
	if len(stored) != 2 || stored[1].Role != provider.RoleAssistant {
		t.Fatalf("history = %+v, want user turn plus assistant reply", stored)
	}

	// The second turn replays the whole conversation.
	if _, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "Thanks, how do I stop it spreading?",
	}); err != nil {
		t.Fatalf("Chat second turn: %v", err)
	}
	if len(gotMessages) != 3 {
		t.Errorf("provider saw %d messages on turn two, want 3", len(gotMessages))
	}
}

func TestChatWeatherIntentWithCoordinates(t *testing.T) {
	server := fakeWeather(t)
	mock := testutil.NewMockProvider("mock")
	mock.ChatFunc = func(ctx context.Context, messages []provider.Message, system string) (string, error) {
		t.Error("weather questions should be answered from live data, not the model")
		return "", nil
	}
	service, history := newTestService(mock, server.URL)

	lat, lon := coords(28.6, 77.2)
	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "Is it a good day to spray?",
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	want := `Current conditions at your location:
🌡️ Temperature: 22.5°C
💧 Humidity: 85%
💨 Wind Speed: 12 km/h
🌤️ Conditions: Overcast

Disease Risk Assessment:
- Fungal Disease Risk: high
- Pest Activity Risk: medium
- Spray Conditions: good

⚠️ Alerts:
⚠️ High risk of fungal diseases (Late Blight, Powdery Mildew)`
	if resp.Message != want {
		t.Errorf("Message = %q, want %q", resp.Message, want)
	}

	// Only the farmer's question lands in history; canned replies do not.
	stored, _ := history.History("s1")
	if len(stored) != 1 || stored[0].Role != provider.RoleUser {
		t.Errorf("history = %+v, want just the user turn", stored)
	}
}

func TestChatWeatherIntentWithoutLocation(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	service, _ := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "check the weather please",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Message != "I'd love to check the weather for you! Could you share your location or enter your coordinates?" {
		t.Errorf("Message = %q", resp.Message)
	}
	if len(resp.ActionsAvailable) != 1 || resp.ActionsAvailable[0].Action != "share_location" {
		t.Errorf("ActionsAvailable = %+v, want share_location", resp.ActionsAvailable)
	}
}

func TestChatIPMIntent(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.ChatFunc = func(ctx context.Context, messages []provider.Message, system string) (string, error) {
		t.Error("the IPM intent should answer without consulting the model")
		return "", nil
	}
	service, history := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "I need a treatment plan for my crop",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.HasPrefix(resp.Message, "I can create a comprehensive pest management plan") {
		t.Errorf("Message = %q", resp.Message)
	}
	wantSuggestions := []string{"Late Blight on tomatoes", "Aphids on vegetables", "Powdery Mildew on cucumbers"}
	if len(resp.Suggestions) != len(wantSuggestions) {
		t.Fatalf("Suggestions = %v", resp.Suggestions)
	}
	for i, want := range wantSuggestions {
		if resp.Suggestions[i] != want {
			t.Errorf("Suggestions[%d] = %q, want %q", i, resp.Suggestions[i], want)
		}
	}
	stored, _ := history.History("s1")
	if len(stored) != 1 {
		t.Errorf("history has %d messages, want 1", len(stored))
	}
}

func TestChatImageDiagnosis(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var quickPrompt, leafPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		if strings.Contains(prompt, "asked:") {
			quickPrompt = prompt
			return "Looks like early blight starting on the lower leaves.", nil
		}
		leafPrompt = prompt
		return leafReply, nil
	}
	service, history := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "What is this?",
		ImageB64:  "aW1n",
		CropType:  "tomato",
		Language:  "hi-IN",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.Message != "Looks like early blight starting on the lower leaves." {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Analysis == nil || resp.Analysis.DiseaseName != "Early Blight" {
		t.Fatalf("Analysis = %+v", resp.Analysis)
	}
	if want := `asked: "IMPORTANT: Respond in Hindi. The user speaks Hindi. What is this?"`; !strings.Contains(quickPrompt, want) {
		t.Errorf("quick prompt %q does not carry %q", quickPrompt, want)
	}
	if !strings.Contains(leafPrompt, "Additional context from farmer: tomato") {
		t.Errorf("leaf prompt missing crop context: %q", leafPrompt)
	}

	if len(resp.Suggestions) != 3 || resp.Suggestions[0] != "Would you like a detailed IPM strategy for Early Blight?" {
		t.Errorf("Suggestions = %v", resp.Suggestions)
	}
	wantActions := []api.Action{
		{Action: "get_ipm_strategy", Label: "Get Treatment Plan"},
		{Action: "check_weather", Label: "Check Spray Conditions"},
		{Action: "more_info", Label: "Learn More About This Disease"},
	}
	if len(resp.ActionsAvailable) != len(wantActions) {
		t.Fatalf("ActionsAvailable = %+v", resp.ActionsAvailable)
	}
	for i, want := range wantActions {
		if resp.ActionsAvailable[i] != want {
			t.Errorf("ActionsAvailable[%d] = %+v, want %+v", i, resp.ActionsAvailable[i], want)
		}
	}

	// Image turns stand alone; they are not replayed to the model later.
	if stored, _ := history.History("s1"); len(stored) != 0 {
		t.Errorf("history = %+v, want empty", stored)
	}
}

func TestChatImageHealthyLeaf(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	var quickPrompt string
	mock.AnalyzeImageFunc = func(ctx context.Context, imageB64, prompt string) (string, error) {
		if strings.Contains(prompt, "asked:") {
			quickPrompt = prompt
			return "This plant looks healthy to me.", nil
		}
		return healthyLeafReply, nil
	}
	service, _ := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		ImageB64:  "aW1n",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(quickPrompt, "What's wrong with this plant?") {
		t.Errorf("quick prompt %q missing the default question", quickPrompt)
	}
	if len(resp.Suggestions) != 0 || len(resp.ActionsAvailable) != 0 {
		t.Errorf("healthy leaf should not offer follow-ups: %+v", resp)
	}
}

func TestIPMStrategyForChat(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.GenerateFunc = func(ctx context.Context, prompt, system string) (string, error) {
		return strategyReply, nil
	}
	service, _ := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.IPMStrategyForChat(context.Background(), api.IPMChatRequest{
		Disease: "Late Blight",
		Crop:    "tomato",
	})
	if err != nil {
		t.Fatalf("IPMStrategyForChat: %v", err)
	}

	want := "Here's your personalized treatment plan for **Late Blight** in your tomato crop:\n\n" +
		"**🚨 Immediate Actions:**\n" +
		"- Remove infected leaves (ASAP)\n" +
		"- Apply copper fungicide (Within 24 hours)\n" +
		"- Improve air circulation (This week)\n" +
		"\n**🌿 Organic Solutions:**\n" +
		"- **Copper fungicide**: Spray all foliage\n" +
		"- **Baking soda spray**: Mist affected areas\n" +
		"\n**🧪 Chemical Options (if needed):**\n" +
		"- **Mancozeb**: 2g per liter (Wait as directed before harvest)\n" +
		"- **Chlorothalonil**: 1.5ml per liter (Wait 7 days before harvest)\n" +
		"\n**🌱 Companion Planting:**\n" +
		"- Plant **Basil** - Repels aphids, whiteflies, and improves flavor\n" +
		"- Plant **Marigold** - Deters nematodes, whiteflies, and many pests\n"
	if resp.Summary != want {
		t.Errorf("Summary =\n%q\nwant\n%q", resp.Summary, want)
	}
	if resp.FullStrategy == nil || resp.FullStrategy.StrategyName != "Late Blight Containment Plan" {
		t.Errorf("FullStrategy = %+v", resp.FullStrategy)
	}
	if resp.FollowUp != "Would you like me to explain any of these in more detail, or check the best time to spray based on your local weather?" {
		t.Errorf("FollowUp = %q", resp.FollowUp)
	}
}

func TestIPMStrategyForChatDefaultsCrop(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	mock.GenerateFunc = func(ctx context.Context, prompt, system string) (string, error) {
		return strategyReply, nil
	}
	service, _ := newTestService(mock, "http://127.0.0.1:0")

	resp, err := service.IPMStrategyForChat(context.Background(), api.IPMChatRequest{Disease: "Aphids"})
	if err != nil {
		t.Fatalf("IPMStrategyForChat: %v", err)
	}
	if !strings.Contains(resp.Summary, "in your general crop:") {
		t.Errorf("Summary header = %q", strings.SplitN(resp.Summary, "\n", 2)[0])
	}
}

func TestSessionLifecycle(t *testing.T) {
	mock := testutil.NewMockProvider("mock")
	service, _ := newTestService(mock, "http://127.0.0.1:0")

	info, err := service.SessionInfo("fresh")
	if err != nil {
		t.Fatalf("SessionInfo: %v", err)
	}
	if info.MessageCount != 0 || info.HasHistory {
		t.Errorf("fresh session info = %+v", info)
	}

	if _, err := service.Chat(context.Background(), ChatParams{
		SessionID: "s1",
		Message:   "My maize looks unwell",
	}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	info, err = service.SessionInfo("s1")
	if err != nil {
		t.Fatalf("SessionInfo: %v", err)
	}
	if info.MessageCount != 2 || !info.HasHistory || info.SessionID != "s1" {
		t.Errorf("session info after chat = %+v", info)
	}

	if err := service.ClearHistory("s1"); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	info, _ = service.SessionInfo("s1")
	if info.MessageCount != 0 || info.HasHistory {
		t.Errorf("session info after clear = %+v", info)
	}
}
