package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
)

// sendCurrentInput submits the textarea content as a chat turn.
func (a AppView) sendCurrentInput() (tea.Model, tea.Cmd) {
	if a.textarea.Value() == "" {
		return a, nil
	}

	userMsg := a.textarea.Value()
	cmd := a.dataModel.SendChatMessage(userMsg)
	if cmd == nil {
		// Blank after trimming, or a request is already in flight
		return a, nil
	}
	a.textarea.Reset()

	// The editor draft is stale once the message is sent
	if err := config.ClearEditorTempFile(); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to clear editor temp file: %v", err)
		}
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("Enter pressed - sending message: %s", userMsg)
	}

	a.startLoadingSpinner()
	a.updateViewportContent(true)

	userMessageIndex := len(a.dataModel.Messages) - 1
	return a, tea.Batch(
		a.renderMarkdownAsync(userMessageIndex, a.dataModel.Messages[userMessageIndex].Content),
		cmd,
		a.loadingSpinner.Tick,
	)
}

// sendPhotoMessage submits a picked photo, with the current input as caption.
func (a AppView) sendPhotoMessage(path string) (tea.Model, tea.Cmd) {
	caption := a.textarea.Value()
	cmd := a.dataModel.SendChatImage(path, caption)
	if cmd == nil {
		return a, nil
	}
	a.textarea.Reset()

	a.startLoadingSpinner()
	a.updateViewportContent(true)

	idx := len(a.dataModel.Messages) - 1
	return a, tea.Batch(
		a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Content),
		cmd,
		a.loadingSpinner.Tick,
	)
}

func (a AppView) handleChatResponseMsg(msg chatResponseMsg) (tea.Model, tea.Cmd) {
	lenBefore := len(a.dataModel.Messages)
	a.dataModel.HandleChatResponse(msg)
	if len(a.dataModel.Messages) == lenBefore {
		// Response belonged to an abandoned transcript
		return a, nil
	}

	a.updateViewportContent(true)

	idx := len(a.dataModel.Messages) - 1
	cmds := []tea.Cmd{
		a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Content),
		a.dataModel.AutoSaveSession(),
	}

	// Read the reply aloud when configured and a speech engine exists
	if msg.Err == nil && a.dataModel.Config != nil && a.dataModel.Config.SpeakReplies {
		if speakCmd := a.dataModel.SpeakMessage(idx); speakCmd != nil {
			cmds = append(cmds, speakCmd)
		}
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleIPMChatMsg(msg ipmChatMsg) (tea.Model, tea.Cmd) {
	lenBefore := len(a.dataModel.Messages)
	a.dataModel.HandleIPMChatResponse(msg)
	if len(a.dataModel.Messages) == lenBefore {
		return a, nil
	}

	a.updateViewportContent(true)

	idx := len(a.dataModel.Messages) - 1
	cmds := []tea.Cmd{
		a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Content),
		a.dataModel.AutoSaveSession(),
	}

	if msg.Err == nil && a.dataModel.Config != nil && a.dataModel.Config.SpeakReplies {
		if speakCmd := a.dataModel.SpeakMessage(idx); speakCmd != nil {
			cmds = append(cmds, speakCmd)
		}
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleMarkdownRenderedMsg(msg markdownRenderedMsg) (tea.Model, tea.Cmd) {
	if msg.MessageIndex < 0 || msg.MessageIndex >= len(a.dataModel.Messages) {
		return a, nil
	}
	a.dataModel.Messages[msg.MessageIndex].Rendered = msg.Rendered

	// Stay put while a search jump highlight is active
	gotoBottom := a.highlightedMessageIdx < 0
	a.updateViewportContent(gotoBottom)
	return a, nil
}

func (a AppView) handleVoiceCaptureMsg(msg voiceCaptureMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Voice] capture failed: %v", msg.Err)
		}
		a.showInfoModal = true
		a.infoModalTitle = a.dataModel.T("errorTitle")
		a.infoModalMsg = a.dataModel.T("connectionError")
		return a, nil
	}
	if msg.Text == "" {
		return a, nil
	}

	// Transcription lands in the input box so the farmer can correct
	// it before sending
	existing := a.textarea.Value()
	if existing != "" && !strings.HasSuffix(existing, " ") {
		existing += " "
	}
	a.textarea.SetValue(existing + msg.Text)
	a.textarea.Focus()
	return a, nil
}

// flashTick drives the search-hit highlight blink.
func flashTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (a AppView) handleFlashTick() (tea.Model, tea.Cmd) {
	if a.highlightFlashCount > 0 && a.highlightFlashCount < 6 {
		a.highlightFlashCount++
		a.updateViewportContent(false)
		return a, flashTick()
	}

	a.highlightedMessageIdx = -1
	a.highlightFlashCount = 0
	a.updateViewportContent(false)
	return a, nil
}
