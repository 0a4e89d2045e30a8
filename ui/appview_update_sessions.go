package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
)

// handleSessionMessage handles session-related messages
func (a AppView) handleSessionMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsListMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Error fetching sessions: %v", msg.Err)
			}
			return a, nil
		}

		a.sessionList = msg.Sessions
		a.selectedSessionIdx = 0

		// Select current session if the manager is open
		if a.showSessionManager && a.dataModel.CurrentSession != nil {
			for i, session := range msg.Sessions {
				if session.ID == a.dataModel.CurrentSession.ID {
					a.selectedSessionIdx = i
					break
				}
			}
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("Fetched %d sessions", len(msg.Sessions))
		}
		return a, nil

	case sessionLoadedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Error loading session: %v", msg.Err)
			}
			return a, nil
		}

		a.dataModel.ApplyLoadedSession(msg.Session)
		a.showSessionManager = false
		a.showGlobalSearch = false
		a.activeTab = TabChat
		a.updateViewportContent(true)

		var cmds []tea.Cmd

		// Jump to the searched hit once the transcript is in place
		if a.pendingScrollToMessageIdx >= 0 {
			idx := a.pendingScrollToMessageIdx
			a.pendingScrollToMessageIdx = -1
			if idx >= 0 && idx < len(a.dataModel.Messages) {
				a.scrollToMessage(idx)
				a.highlightedMessageIdx = idx
				a.highlightFlashCount = 1
				cmds = append(cmds, flashTick())
			}
		}

		if a.dataModel.NeedsInitialRender {
			a.dataModel.NeedsInitialRender = false
			for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
				m := a.dataModel.Messages[i]
				if m.Role != "assistant" && m.Role != "user" {
					continue
				}
				// Skip if already rendered (cached from disk)
				if m.Rendered != "" && m.Rendered != m.Content {
					continue
				}
				cmds = append(cmds, a.renderMarkdownAsync(i, m.Content))
			}
		}

		return a, tea.Batch(cmds...)

	case sessionSavedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Error saving session: %v", msg.Err)
			}
			return a, nil
		}
		a.dataModel.SessionDirty = false
		return a, nil

	case sessionDeletedMsg:
		// Successful deletes come back as a refreshed session list;
		// only failures arrive here
		if msg.Err != nil {
			a.showInfoModal = true
			a.infoModalTitle = "Delete Failed"
			a.infoModalMsg = msg.Err.Error()
		}
		return a, nil

	case searchResultsMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("Global search failed: %v", msg.Err)
			}
			return a, nil
		}
		a.globalSearchResults = msg.Matches
		a.selectedGlobalIdx = 0
		a.globalSearchScrollIdx = 0
		return a, nil

	case transcriptSearchMsg:
		a.messageSearchResults = msg.Matches
		a.selectedSearchIdx = 0
		a.messageSearchScrollIdx = 0
		return a, nil
	}

	return a, nil
}
