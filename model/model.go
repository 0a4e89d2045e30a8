package model

import (
	"agriguard/api"
	"agriguard/config"
	"agriguard/i18n"
	"agriguard/storage"
	"agriguard/voice"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config         *config.Config
	Gateway        Gateway
	SessionStorage *storage.SessionStorage
	SearchIndex    *storage.SearchIndex
	Lang           *i18n.Context
	Voice          *voice.Adapter

	// Application data
	Messages       []Message
	CurrentSession *storage.Session
	Suggestions    []string
	Actions        []api.Action

	// Runtime state (not UI)
	Waiting            bool // a chat request is in flight
	ChatEpoch          int  // bumped when the transcript is replaced
	SessionDirty       bool
	NeedsInitialRender bool
	Quitting           bool

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration
func NewModel(cfg *config.Config, gateway Gateway, sessionStorage *storage.SessionStorage, searchIndex *storage.SearchIndex, lang *i18n.Context, voiceAdapter *voice.Adapter, lastSession *storage.Session, version string) *Model {
	// Load messages from last session if available
	var messages []Message
	needsRender := false
	if lastSession != nil {
		for _, sMsg := range lastSession.Messages {
			messages = append(messages, Message{
				Role:      sMsg.Role,
				Content:   sMsg.Content,
				Rendered:  sMsg.Rendered,
				Timestamp: sMsg.Timestamp,
			})
		}
		needsRender = len(messages) > 0
	}

	if voiceAdapter != nil && lang != nil {
		voiceAdapter.SetLocale(lang.Active())
	}

	return &Model{
		Config:             cfg,
		Gateway:            gateway,
		SessionStorage:     sessionStorage,
		SearchIndex:        searchIndex,
		Lang:               lang,
		Voice:              voiceAdapter,
		Messages:           messages,
		CurrentSession:     lastSession,
		Waiting:            false,
		SessionDirty:       false,
		NeedsInitialRender: needsRender,
		Quitting:           false,
		Version:            version,
	}
}

// T translates a message key into the active language.
func (m *Model) T(key string) string {
	if m.Lang == nil {
		return key
	}
	return m.Lang.T(key)
}

// SetLanguage switches the interface language, persists the choice,
// and retargets the speech voice. Applies from the next render and
// the next utterance.
func (m *Model) SetLanguage(code string) error {
	if m.Lang == nil {
		return nil
	}
	if err := m.Lang.SetActive(code); err != nil {
		return err
	}
	if m.Voice != nil {
		m.Voice.SetLocale(m.Lang.Active())
	}
	return nil
}

// LastAssistantIndex returns the index of the newest assistant turn,
// or -1 when the transcript has none.
func (m *Model) LastAssistantIndex() int {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Role == "assistant" {
			return i
		}
	}
	return -1
}
