package ui

import (
	"agriguard/model"
)

// Message type aliases for backward compatibility
type Message = model.Message

// Message type aliases - these are now defined in model package
type chatResponseMsg = model.ChatResponseMsg
type ipmChatMsg = model.IPMChatMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type healthMsg = model.HealthMsg
type aiStatusMsg = model.AIStatusMsg
type weatherSnapshotMsg = model.WeatherSnapshotMsg
type forecastMsg = model.ForecastMsg
type sprayWindowsMsg = model.SprayWindowsMsg
type outbreakForecastMsg = model.OutbreakForecastMsg
type leafAnalysisMsg = model.LeafAnalysisMsg
type ipmStrategyMsg = model.IPMStrategyMsg
type quickIPMMsg = model.QuickIPMMsg
type diseaseDatabaseMsg = model.DiseaseDatabaseMsg
type diseaseEntryMsg = model.DiseaseEntryMsg
type sessionsListMsg = model.SessionsListMsg
type sessionLoadedMsg = model.SessionLoadedMsg
type sessionSavedMsg = model.SessionSavedMsg
type sessionDeletedMsg = model.SessionDeletedMsg
type searchResultsMsg = model.SearchResultsMsg
type transcriptSearchMsg = model.TranscriptSearchMsg
type voiceCaptureMsg = model.VoiceCaptureMsg
type speechDoneMsg = model.SpeechDoneMsg
type editorContentMsg = model.EditorContentMsg
type editorErrorMsg = model.EditorErrorMsg
type flashTickMsg = model.FlashTickMsg

type SettingFieldType int

const (
	SettingTypeServerURL SettingFieldType = iota
	SettingTypeLatitude
	SettingTypeLongitude
	SettingTypeCropType
	SettingTypeSpeakReplies
)

type SettingField struct {
	Label        string
	Value        string
	DefaultValue string
	Type         SettingFieldType
	ErrorMsg     string
}
