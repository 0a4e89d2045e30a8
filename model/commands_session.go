package model

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
	"agriguard/storage"
)

// FetchSessionList retrieves the list of saved sessions
func (m *Model) FetchSessionList() tea.Cmd {
	if m.SessionStorage == nil {
		return nil
	}
	store := m.SessionStorage
	return func() tea.Msg {
		sessions, err := store.List()
		return SessionsListMsg{
			Sessions: sessions,
			Err:      err,
		}
	}
}

// LoadSession loads a session by ID
func (m *Model) LoadSession(sessionID string) tea.Cmd {
	if m.SessionStorage == nil {
		return nil
	}

	// Already loaded, just close the session manager
	if m.CurrentSession != nil && m.CurrentSession.ID == sessionID {
		current := m.CurrentSession
		return func() tea.Msg {
			return SessionLoadedMsg{Session: current}
		}
	}

	store := m.SessionStorage
	return func() tea.Msg {
		session, err := store.Load(sessionID)
		if err != nil {
			return SessionLoadedMsg{Err: err}
		}
		if err := store.SaveCurrentSessionID(session.ID); err != nil {
			return SessionLoadedMsg{Err: err}
		}
		return SessionLoadedMsg{Session: session}
	}
}

// ApplyLoadedSession swaps the transcript to the loaded session.
// Bumping the epoch drops any response still in flight for the old
// transcript.
func (m *Model) ApplyLoadedSession(session *storage.Session) {
	if session == nil {
		return
	}
	m.ChatEpoch++
	m.Waiting = false
	m.CurrentSession = session
	m.Messages = nil
	for _, sMsg := range session.Messages {
		m.Messages = append(m.Messages, Message{
			Role:      sMsg.Role,
			Content:   sMsg.Content,
			Rendered:  sMsg.Rendered,
			Timestamp: sMsg.Timestamp,
		})
	}
	m.Suggestions = nil
	m.Actions = nil
	m.SessionDirty = false
	m.NeedsInitialRender = len(m.Messages) > 0
}

// SaveCurrentSession saves the current session to storage and keeps
// the search index in step with it.
func (m *Model) SaveCurrentSession() tea.Cmd {
	if m.SessionStorage == nil || m.CurrentSession == nil {
		return nil
	}

	var sessionMessages []storage.Message
	for _, msg := range m.Messages {
		if msg.Role == "user" || msg.Role == "assistant" {
			sessionMessages = append(sessionMessages, storage.Message{
				Role:      msg.Role,
				Content:   msg.Content,
				Rendered:  msg.Rendered,
				Timestamp: msg.Timestamp,
			})
		}
	}

	m.CurrentSession.Messages = sessionMessages
	m.CurrentSession.UpdatedAt = time.Now()
	m.CurrentSession.Language = m.languageCode()

	session := m.CurrentSession
	store := m.SessionStorage
	index := m.SearchIndex

	return func() tea.Msg {
		if err := store.Save(session); err != nil {
			return SessionSavedMsg{Err: err}
		}
		if err := store.SaveCurrentSessionID(session.ID); err != nil {
			return SessionSavedMsg{Err: err}
		}
		if index != nil {
			if err := index.IndexSession(session); err != nil && config.DebugLog != nil {
				config.DebugLog.Printf("[Session] failed to index session %s: %v", session.ID, err)
			}
		}
		return SessionSavedMsg{}
	}
}

// AutoSaveSession saves the current session, creating and naming it
// from the first user message when it does not exist yet.
func (m *Model) AutoSaveSession() tea.Cmd {
	if m.SessionStorage == nil {
		return nil
	}

	firstUserMsg := ""
	for _, msg := range m.Messages {
		if msg.Role == "user" {
			firstUserMsg = msg.Content
			break
		}
	}

	if m.CurrentSession == nil {
		m.CurrentSession = &storage.Session{
			Name:      storage.GenerateSessionName(firstUserMsg),
			Language:  m.languageCode(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if m.Config != nil {
			m.CurrentSession.CropType = m.Config.CropType
		}
	} else if m.CurrentSession.Name == "" && firstUserMsg != "" {
		m.CurrentSession.Name = storage.GenerateSessionName(firstUserMsg)
	}

	return m.SaveCurrentSession()
}

// StartNewSession clears the transcript and releases the backend
// conversation. The save of the outgoing session must already have
// happened.
func (m *Model) StartNewSession() tea.Cmd {
	remoteID := ""
	if m.CurrentSession != nil {
		remoteID = m.CurrentSession.RemoteID
	}

	m.ChatEpoch++
	m.Waiting = false
	m.CurrentSession = nil
	m.Messages = nil
	m.Suggestions = nil
	m.Actions = nil
	m.SessionDirty = false
	m.NeedsInitialRender = false

	if remoteID == "" || m.Gateway == nil {
		return nil
	}

	gateway := m.Gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()

		// Best effort: a dead server should not block starting over.
		if err := gateway.ClearSession(ctx, remoteID); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Session] failed to clear backend session %s: %v", remoteID, err)
		}
		return nil
	}
}

// DeleteSessionCmd removes a session from disk and the search index,
// then refreshes the session list.
func (m *Model) DeleteSessionCmd(sessionID string) tea.Cmd {
	if m.SessionStorage == nil {
		return nil
	}
	store := m.SessionStorage
	index := m.SearchIndex
	return func() tea.Msg {
		if err := store.Delete(sessionID); err != nil {
			return SessionDeletedMsg{Err: err}
		}
		if index != nil {
			if err := index.RemoveSession(sessionID); err != nil && config.DebugLog != nil {
				config.DebugLog.Printf("[Session] failed to remove session %s from index: %v", sessionID, err)
			}
		}
		sessions, err := store.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// RenameSessionCmd renames a session and refreshes the session list
func (m *Model) RenameSessionCmd(sessionID, newName string) tea.Cmd {
	store := m.SessionStorage
	index := m.SearchIndex
	return func() tea.Msg {
		if store == nil {
			return SessionsListMsg{Err: fmt.Errorf("session storage not initialized")}
		}

		if err := store.Rename(sessionID, newName); err != nil {
			return SessionsListMsg{Err: err}
		}

		// Keep the indexed session name in step for search previews.
		if index != nil {
			if session, err := store.Load(sessionID); err == nil {
				_ = index.IndexSession(session)
			}
		}

		sessions, err := store.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// SearchAllSessions queries the full-text index across every saved
// session.
func (m *Model) SearchAllSessions(query string) tea.Cmd {
	if m.SearchIndex == nil {
		return nil
	}
	index := m.SearchIndex
	return func() tea.Msg {
		matches, err := index.Search(query, 0)
		return SearchResultsMsg{Query: query, Matches: matches, Err: err}
	}
}

// SearchCurrentSession scans the open transcript for a substring.
func (m *Model) SearchCurrentSession(query string) tea.Cmd {
	var msgs []storage.Message
	for _, msg := range m.Messages {
		msgs = append(msgs, storage.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	return func() tea.Msg {
		return TranscriptSearchMsg{Query: query, Matches: storage.SearchMessages(msgs, query)}
	}
}
