package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	store, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	session := &Session{
		Name:     "Tomato leaf spots",
		RemoteID: "abc123",
		Language: "hi-IN",
		CropType: "tomato",
		Messages: []Message{
			{Role: "user", Content: "My tomato leaves have brown spots", Timestamp: time.Now()},
			{Role: "assistant", Content: "That sounds like early blight.", Timestamp: time.Now()},
		},
	}

	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("Save should assign an id")
	}

	loaded, err := store.Load(session.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.RemoteID != "abc123" {
		t.Errorf("RemoteID = %q, want %q", loaded.RemoteID, "abc123")
	}
	if loaded.Language != "hi-IN" {
		t.Errorf("Language = %q, want %q", loaded.Language, "hi-IN")
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(loaded.Messages))
	}
	if loaded.Messages[0].Content != "My tomato leaves have brown spots" {
		t.Errorf("unexpected first message: %q", loaded.Messages[0].Content)
	}
}

func TestSessionListNewestFirst(t *testing.T) {
	store, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	older := &Session{Name: "older"}
	if err := store.Save(older); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	newer := &Session{Name: "newer"}
	if err := store.Save(newer); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Name != "newer" || list[1].Name != "older" {
		t.Errorf("list order = %q, %q, want newer, older", list[0].Name, list[1].Name)
	}
}

func TestSessionListSkipsCorrupted(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSessionStorage(dir)
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	if err := store.Save(&Session{Name: "good"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	bad := filepath.Join(dir, "sessions", "broken.json")
	if err := os.WriteFile(bad, []byte("{half a json"), 0600); err != nil {
		t.Fatalf("failed to write corrupted session: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1 (corrupted file skipped)", len(list))
	}
}

func TestSessionDelete(t *testing.T) {
	store, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	session := &Session{Name: "doomed"}
	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(session.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Load(session.ID); err == nil {
		t.Error("Load should fail after Delete")
	}
}

func TestCurrentSessionID(t *testing.T) {
	store, err := NewSessionStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	if err := store.SaveCurrentSessionID("some-id"); err != nil {
		t.Fatalf("SaveCurrentSessionID failed: %v", err)
	}

	id, err := store.LoadCurrentSessionID()
	if err != nil {
		t.Fatalf("LoadCurrentSessionID failed: %v", err)
	}
	if id != "some-id" {
		t.Errorf("LoadCurrentSessionID = %q, want %q", id, "some-id")
	}
}

func TestGenerateSessionName(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "short message used as-is",
			message: "Tomato blight help",
			want:    "Tomato blight help",
		},
		{
			name:    "long message truncated",
			message: "My tomato plants have developed strange brown spots over the last week",
			want:    "My tomato plants have develope...",
		},
		{
			name:    "newlines collapsed",
			message: "First line\nsecond line",
			want:    "First line second line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSessionName(tt.message)
			if got != tt.want {
				t.Errorf("GenerateSessionName(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestGenerateSessionNameEmpty(t *testing.T) {
	got := GenerateSessionName("")
	if !strings.HasPrefix(got, "Session ") {
		t.Errorf("GenerateSessionName(\"\") = %q, want timestamp fallback", got)
	}
}

func TestSearchMessages(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "blight is mentioned here too"},
		{Role: "user", Content: "What is late blight?"},
		{Role: "assistant", Content: "Late blight is caused by Phytophthora infestans."},
		{Role: "user", Content: "How do I water tomatoes?"},
	}

	matches := SearchMessages(messages, "blight")
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2 (system messages excluded)", len(matches))
	}
	if matches[0].MessageIndex != 1 || matches[1].MessageIndex != 2 {
		t.Errorf("match indexes = %d, %d, want 1, 2", matches[0].MessageIndex, matches[1].MessageIndex)
	}

	if got := SearchMessages(messages, ""); len(got) != 0 {
		t.Errorf("empty query should match nothing, got %d", len(got))
	}

	if got := SearchMessages(messages, "BLIGHT"); len(got) != 2 {
		t.Errorf("search should be case-insensitive, got %d matches", len(got))
	}
}
