package model

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/api"
	"agriguard/config"
	"agriguard/storage"
)

// Request timeouts. Vision analysis on a local model can take well
// over a minute; status probes should fail fast.
const (
	requestTimeout   = 120 * time.Second
	dashboardTimeout = 30 * time.Second
	statusTimeout    = 10 * time.Second
)

// SendChatMessage validates and submits a text turn. Blank input, and
// input while a request is already in flight, are no-ops returning nil
// with the transcript untouched.
func (m *Model) SendChatMessage(text string) tea.Cmd {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if m.Waiting {
		return nil
	}

	m.appendUserMessage(Message{Role: "user", Content: trimmed, Timestamp: time.Now()})
	req := m.buildChatRequest(trimmed)

	gateway := m.Gateway
	epoch := m.ChatEpoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] sending message (session=%q, lang=%s)", req.SessionID, req.Language)
		}

		resp, err := gateway.SendMessage(ctx, req)
		return ChatResponseMsg{Epoch: epoch, Response: resp, Err: err}
	}
}

// SendChatImage submits a photo turn, with an optional caption the
// agronomist treats as the question about the photo.
func (m *Model) SendChatImage(imagePath, caption string) tea.Cmd {
	if imagePath == "" || m.Waiting {
		return nil
	}

	caption = strings.TrimSpace(caption)
	content := caption
	if content == "" {
		content = filepath.Base(imagePath)
	}
	m.appendUserMessage(Message{Role: "user", Content: content, Timestamp: time.Now(), ImagePath: imagePath})
	req := m.buildChatRequest(caption)

	gateway := m.Gateway
	epoch := m.ChatEpoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] sending photo %s (session=%q)", filepath.Base(imagePath), req.SessionID)
		}

		resp, err := gateway.SendMessageWithImage(ctx, req, imagePath)
		return ChatResponseMsg{Epoch: epoch, Response: resp, Err: err}
	}
}

func (m *Model) appendUserMessage(msg Message) {
	m.Messages = append(m.Messages, msg)
	m.Waiting = true
	m.SessionDirty = true
}

func (m *Model) buildChatRequest(text string) api.ChatRequest {
	req := api.ChatRequest{
		Message:  text,
		Language: m.languageCode(),
	}
	if m.CurrentSession != nil {
		req.SessionID = m.CurrentSession.RemoteID
		req.CropType = m.CurrentSession.CropType
	}
	if req.CropType == "" && m.Config != nil {
		req.CropType = m.Config.CropType
	}
	if m.Config != nil && m.Config.HasLocation() {
		lat, lon := m.Config.Location()
		req.Latitude = &lat
		req.Longitude = &lon
	}
	return req
}

func (m *Model) languageCode() string {
	if m.Lang == nil {
		return ""
	}
	return m.Lang.Active()
}

// HandleChatResponse applies a finished chat request to the
// transcript. Responses for a transcript that has since been replaced
// are dropped.
func (m *Model) HandleChatResponse(msg ChatResponseMsg) {
	if msg.Epoch != m.ChatEpoch {
		return
	}
	m.Waiting = false

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] request failed: %v", msg.Err)
		}
		m.Messages = append(m.Messages, Message{
			Role:      "assistant",
			Content:   m.T("connectionError"),
			Timestamp: time.Now(),
		})
		m.SessionDirty = true
		return
	}

	resp := msg.Response
	m.adoptSessionID(resp.SessionID)
	m.Messages = append(m.Messages, Message{
		Role:        "assistant",
		Content:     resp.Message,
		Timestamp:   time.Now(),
		Analysis:    resp.Analysis,
		Suggestions: resp.Suggestions,
		Actions:     resp.ActionsAvailable,
	})
	m.Suggestions = resp.Suggestions
	m.Actions = resp.ActionsAvailable
	m.SessionDirty = true
}

// adoptSessionID pins the backend conversation id to this session.
// The first id wins: a later response carrying a different id does
// not move the conversation.
func (m *Model) adoptSessionID(id string) {
	if id == "" {
		return
	}
	if m.CurrentSession == nil {
		m.CurrentSession = &storage.Session{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
			Language:  m.languageCode(),
		}
		if m.Config != nil {
			m.CurrentSession.CropType = m.Config.CropType
		}
	}
	if m.CurrentSession.RemoteID == "" {
		m.CurrentSession.RemoteID = id
	}
}

// FetchConversationIPM asks for the treatment plan built from the
// conversation's diagnosis context. Needs an established backend
// session to have anything to plan from.
func (m *Model) FetchConversationIPM() tea.Cmd {
	if m.Waiting {
		return nil
	}
	if m.CurrentSession == nil || m.CurrentSession.RemoteID == "" {
		return nil
	}

	req := api.IPMChatRequest{
		SessionID: m.CurrentSession.RemoteID,
		Crop:      m.CurrentSession.CropType,
	}
	if req.Crop == "" && m.Config != nil {
		req.Crop = m.Config.CropType
	}
	if m.Config != nil && m.Config.HasLocation() {
		lat, lon := m.Config.Location()
		req.Latitude = &lat
		req.Longitude = &lon
	}

	m.Waiting = true
	gateway := m.Gateway
	epoch := m.ChatEpoch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := gateway.ChatIPMStrategy(ctx, req)
		return IPMChatMsg{Epoch: epoch, Response: resp, Err: err}
	}
}

// HandleIPMChatResponse folds the conversational treatment plan into
// the transcript.
func (m *Model) HandleIPMChatResponse(msg IPMChatMsg) {
	if msg.Epoch != m.ChatEpoch {
		return
	}
	m.Waiting = false

	if msg.Err != nil {
		m.Messages = append(m.Messages, Message{
			Role:      "assistant",
			Content:   m.T("connectionError"),
			Timestamp: time.Now(),
		})
		m.SessionDirty = true
		return
	}

	content := msg.Response.Summary
	if msg.Response.FollowUp != "" {
		content += "\n\n" + msg.Response.FollowUp
	}
	m.Messages = append(m.Messages, Message{
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	})
	m.SessionDirty = true
}

// RunSuggestedAction dispatches one of the reply's action buttons.
func (m *Model) RunSuggestedAction(action api.Action) tea.Cmd {
	switch action.Action {
	case "get_ipm_strategy":
		return m.FetchConversationIPM()
	case "share_location":
		// The UI opens the coordinates prompt; nothing to send yet.
		return nil
	default:
		// check_weather, more_info: the label reads as a question, so
		// it goes through the normal chat path and intent detection.
		return m.SendChatMessage(action.Label)
	}
}

// FetchHealth probes the backend root health endpoint.
func (m *Model) FetchHealth() tea.Cmd {
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()

		health, err := gateway.Health(ctx)
		return HealthMsg{Health: health, Err: err}
	}
}

// FetchAIStatus reports which AI providers the backend can reach.
func (m *Model) FetchAIStatus() tea.Cmd {
	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()

		status, err := gateway.AIStatus(ctx)
		return AIStatusMsg{Status: status, Err: err}
	}
}
