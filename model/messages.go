package model

import (
	"agriguard/api"
	"agriguard/storage"
)

// ChatResponseMsg carries a finished chat request back into the
// update loop. Epoch identifies the transcript the request belongs
// to; responses from an abandoned transcript are dropped.
type ChatResponseMsg struct {
	Epoch    int
	Response *api.ChatResponse
	Err      error
}

type IPMChatMsg struct {
	Epoch    int
	Response *api.IPMChatResponse
	Err      error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}

type HealthMsg struct {
	Health *api.Health
	Err    error
}

type AIStatusMsg struct {
	Status *api.AIStatus
	Err    error
}

type WeatherSnapshotMsg struct {
	Current *api.CurrentWeather
	Risk    *api.DiseaseRisk
	Err     error
}

type ForecastMsg struct {
	Forecast *api.Forecast
	Err      error
}

type SprayWindowsMsg struct {
	Windows *api.SprayWindows
	Err     error
}

type OutbreakForecastMsg struct {
	Forecast *api.OutbreakForecast
	Err      error
}

type LeafAnalysisMsg struct {
	Analysis *api.LeafAnalysis
	Err      error
}

type IPMStrategyMsg struct {
	Strategy *api.IPMStrategy
	Err      error
}

type QuickIPMMsg struct {
	Recommendation *api.QuickRecommendation
	Err            error
}

type DiseaseDatabaseMsg struct {
	Database *api.DiseaseDatabase
	Err      error
}

type DiseaseEntryMsg struct {
	Key  string
	Info *api.DiseaseInfo
	Err  error
}

type SessionsListMsg struct {
	Sessions []storage.SessionMetadata
	Err      error
}

type SessionLoadedMsg struct {
	Session *storage.Session
	Err     error
}

type SessionSavedMsg struct {
	Err error
}

type SessionDeletedMsg struct {
	Err error
}

type SearchResultsMsg struct {
	Query   string
	Matches []storage.SessionMessageMatch
	Err     error
}

type TranscriptSearchMsg struct {
	Query   string
	Matches []storage.MessageMatch
	Err     error
}

// VoiceCaptureMsg reports a finished dictation: the transcribed text
// ready for the input box, or the failure that stopped it.
type VoiceCaptureMsg struct {
	Text string
	Err  error
}

type SpeechDoneMsg struct {
	Err error
}

type EditorContentMsg struct {
	Content string
}

type EditorErrorMsg struct {
	Err error
}

type FlashTickMsg struct{}
