package model

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"agriguard/config"
	"agriguard/i18n"
)

// StartDictation records one utterance and sends it for
// transcription. The resulting text lands in the input box rather
// than being sent, so the farmer can correct it first. No microphone
// support means no command.
func (m *Model) StartDictation() tea.Cmd {
	if m.Voice == nil || !m.Voice.CaptureAvailable() {
		return nil
	}

	adapter := m.Voice
	gateway := m.Gateway
	lang := i18n.BaseSubtag(m.languageCode())
	return func() tea.Msg {
		path, err := adapter.Capture(config.GetVoiceCaptureDir())
		if err != nil {
			return VoiceCaptureMsg{Err: err}
		}
		if path == "" {
			// Capture unavailable or already running.
			return VoiceCaptureMsg{}
		}
		defer os.Remove(path)

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		text, err := gateway.Transcribe(ctx, path, lang)
		if err != nil {
			return VoiceCaptureMsg{Err: err}
		}
		return VoiceCaptureMsg{Text: text}
	}
}

// StopDictation ends the running capture early; transcription still
// happens on what was recorded.
func (m *Model) StopDictation() {
	if m.Voice != nil {
		m.Voice.StopCapture()
	}
}

// SpeakMessage reads one transcript message aloud.
func (m *Model) SpeakMessage(index int) tea.Cmd {
	if m.Voice == nil || !m.Voice.SpeechAvailable() {
		return nil
	}
	if index < 0 || index >= len(m.Messages) {
		return nil
	}

	adapter := m.Voice
	content := m.Messages[index].Content
	return func() tea.Msg {
		return SpeechDoneMsg{Err: adapter.Speak(content)}
	}
}

// SpeakLastReply reads the newest assistant turn aloud.
func (m *Model) SpeakLastReply() tea.Cmd {
	return m.SpeakMessage(m.LastAssistantIndex())
}

// StopSpeaking silences the current utterance.
func (m *Model) StopSpeaking() {
	if m.Voice != nil {
		m.Voice.StopSpeaking()
	}
}

// Dictating reports whether a capture is running, for the input
// indicator.
func (m *Model) Dictating() bool {
	return m.Voice != nil && m.Voice.Listening()
}
