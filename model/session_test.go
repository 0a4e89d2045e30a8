package model

import (
	"testing"
	"time"

	"agriguard/storage"
)

func newPersistentModel(t *testing.T) (*Model, *fakeGateway) {
	t.Helper()
	store, err := storage.NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create session storage: %v", err)
	}
	fake := &fakeGateway{}
	m := newTestModel(fake)
	m.SessionStorage = store
	return m, fake
}

func TestAutoSaveNamesSessionFromFirstMessage(t *testing.T) {
	m, _ := newPersistentModel(t)

	cmd := m.SendChatMessage("My tomato plants have dark spots on the leaves")
	m.HandleChatResponse(cmd().(ChatResponseMsg))

	save := m.AutoSaveSession()
	if save == nil {
		t.Fatal("expected a save command")
	}
	if msg := save().(SessionSavedMsg); msg.Err != nil {
		t.Fatalf("save failed: %v", msg.Err)
	}

	want := storage.GenerateSessionName("My tomato plants have dark spots on the leaves")
	if m.CurrentSession.Name != want {
		t.Errorf("session name = %q, want %q", m.CurrentSession.Name, want)
	}
	if m.CurrentSession.ID == "" {
		t.Error("save should have assigned an id")
	}

	sessions, err := m.SessionStorage.List()
	if err != nil || len(sessions) != 1 {
		t.Fatalf("List() = %v, %v, want one session", sessions, err)
	}
	if sessions[0].MessageCount != 2 {
		t.Errorf("saved message count = %d, want 2", sessions[0].MessageCount)
	}
}

func TestSaveKeepsRemoteIDForNextLaunch(t *testing.T) {
	m, _ := newPersistentModel(t)

	cmd := m.SendChatMessage("establish")
	m.HandleChatResponse(cmd().(ChatResponseMsg))
	if msg := m.AutoSaveSession()().(SessionSavedMsg); msg.Err != nil {
		t.Fatalf("save failed: %v", msg.Err)
	}

	loaded, err := m.SessionStorage.Load(m.CurrentSession.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RemoteID != "s-1" {
		t.Errorf("persisted RemoteID = %q, want s-1", loaded.RemoteID)
	}
}

func TestApplyLoadedSessionReplacesTranscript(t *testing.T) {
	m, _ := newPersistentModel(t)

	// A response still in flight for the old transcript...
	cmd := m.SendChatMessage("old question")
	pending := cmd().(ChatResponseMsg)

	session := &storage.Session{
		ID:       "restored",
		RemoteID: "remote-9",
		Name:     "Restored session",
		Messages: []storage.Message{
			{Role: "user", Content: "earlier question", Timestamp: time.Now()},
			{Role: "assistant", Content: "earlier answer", Timestamp: time.Now()},
		},
	}
	m.ApplyLoadedSession(session)

	// ...must not land in the restored one.
	m.HandleChatResponse(pending)

	if len(m.Messages) != 2 {
		t.Fatalf("transcript has %d messages, want the 2 restored ones", len(m.Messages))
	}
	if m.Messages[0].Content != "earlier question" {
		t.Errorf("restored transcript starts with %q", m.Messages[0].Content)
	}
	if !m.NeedsInitialRender {
		t.Error("restored messages need a markdown render pass")
	}
	if m.Waiting {
		t.Error("restored session should start idle")
	}
	if m.CurrentSession.RemoteID != "remote-9" {
		t.Errorf("RemoteID = %q, want remote-9", m.CurrentSession.RemoteID)
	}
}

func TestLoadSessionRoundTrip(t *testing.T) {
	m, _ := newPersistentModel(t)

	cmd := m.SendChatMessage("persist me")
	m.HandleChatResponse(cmd().(ChatResponseMsg))
	if msg := m.AutoSaveSession()().(SessionSavedMsg); msg.Err != nil {
		t.Fatalf("save failed: %v", msg.Err)
	}
	savedID := m.CurrentSession.ID

	m.StartNewSession()

	load := m.LoadSession(savedID)
	if load == nil {
		t.Fatal("expected a load command")
	}
	msg := load().(SessionLoadedMsg)
	if msg.Err != nil {
		t.Fatalf("load failed: %v", msg.Err)
	}
	m.ApplyLoadedSession(msg.Session)

	if len(m.Messages) != 2 {
		t.Errorf("restored transcript has %d messages, want 2", len(m.Messages))
	}

	currentID, err := m.SessionStorage.LoadCurrentSessionID()
	if err != nil || currentID != savedID {
		t.Errorf("current session pointer = %q, %v, want %q", currentID, err, savedID)
	}
}

func TestSearchCurrentSession(t *testing.T) {
	m, _ := newPersistentModel(t)

	cmd := m.SendChatMessage("aphids are eating my kale")
	m.HandleChatResponse(cmd().(ChatResponseMsg))

	msg := m.SearchCurrentSession("aphids")().(TranscriptSearchMsg)
	if len(msg.Matches) != 1 {
		t.Fatalf("matches = %+v, want one", msg.Matches)
	}
	if msg.Matches[0].MessageIndex != 0 {
		t.Errorf("match index = %d, want 0", msg.Matches[0].MessageIndex)
	}
}
