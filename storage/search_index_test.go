package storage

import (
	"testing"
	"time"
)

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()

	index, err := NewSearchIndex(t.TempDir())
	if err != nil {
		t.Fatalf("NewSearchIndex failed: %v", err)
	}
	t.Cleanup(func() { index.Close() })

	return index
}

func TestSearchIndexRoundTrip(t *testing.T) {
	index := newTestIndex(t)

	session := &Session{
		ID:   "s1",
		Name: "Maize worms",
		Messages: []Message{
			{Role: "system", Content: "fall armyworm context"},
			{Role: "user", Content: "Something is eating my maize leaves", Timestamp: time.Now()},
			{Role: "assistant", Content: "This looks like fall armyworm damage.", Timestamp: time.Now()},
		},
	}

	if err := index.IndexSession(session); err != nil {
		t.Fatalf("IndexSession failed: %v", err)
	}

	matches, err := index.Search("armyworm", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1 (system rows are not indexed)", len(matches))
	}

	match := matches[0]
	if match.SessionID != "s1" || match.SessionName != "Maize worms" {
		t.Errorf("match session = %q/%q, want s1/Maize worms", match.SessionID, match.SessionName)
	}
	if match.MessageIndex != 2 {
		t.Errorf("MessageIndex = %d, want 2", match.MessageIndex)
	}
	if match.Role != "assistant" {
		t.Errorf("Role = %q, want assistant", match.Role)
	}
}

func TestSearchIndexReindexReplaces(t *testing.T) {
	index := newTestIndex(t)

	session := &Session{
		ID:   "s1",
		Name: "Weather chat",
		Messages: []Message{
			{Role: "user", Content: "Should I spray today?", Timestamp: time.Now()},
		},
	}

	if err := index.IndexSession(session); err != nil {
		t.Fatalf("IndexSession failed: %v", err)
	}

	// Reindexing the same session must not duplicate rows.
	session.Messages = append(session.Messages, Message{
		Role: "assistant", Content: "Wind is too strong to spray.", Timestamp: time.Now(),
	})
	if err := index.IndexSession(session); err != nil {
		t.Fatalf("IndexSession (again) failed: %v", err)
	}

	matches, err := index.Search("spray", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("len(matches) = %d, want 2", len(matches))
	}
}

func TestSearchIndexRemoveSession(t *testing.T) {
	index := newTestIndex(t)

	session := &Session{
		ID:       "s1",
		Name:     "Old chat",
		Messages: []Message{{Role: "user", Content: "powdery mildew on squash", Timestamp: time.Now()}},
	}
	if err := index.IndexSession(session); err != nil {
		t.Fatalf("IndexSession failed: %v", err)
	}

	if err := index.RemoveSession("s1"); err != nil {
		t.Fatalf("RemoveSession failed: %v", err)
	}

	matches, err := index.Search("mildew", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("len(matches) = %d, want 0 after removal", len(matches))
	}
}

func TestSearchIndexEmptyQuery(t *testing.T) {
	index := newTestIndex(t)

	matches, err := index.Search("   ", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("blank query should return no matches, got %d", len(matches))
	}
}

func TestSearchIndexQuotesInQuery(t *testing.T) {
	index := newTestIndex(t)

	session := &Session{
		ID:       "s1",
		Name:     "Quotes",
		Messages: []Message{{Role: "user", Content: `the "silver leaf" symptom`, Timestamp: time.Now()}},
	}
	if err := index.IndexSession(session); err != nil {
		t.Fatalf("IndexSession failed: %v", err)
	}

	// Embedded quotes must not break the FTS match expression.
	if _, err := index.Search(`"silver leaf"`, 10); err != nil {
		t.Fatalf("Search with quotes failed: %v", err)
	}
}

func TestSearchIndexRebuild(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSessionStorage(dir)
	if err != nil {
		t.Fatalf("NewSessionStorage failed: %v", err)
	}

	session := &Session{
		Name:     "Rice blast",
		Messages: []Message{{Role: "user", Content: "lesions on rice leaves", Timestamp: time.Now()}},
	}
	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	index, err := NewSearchIndex(dir)
	if err != nil {
		t.Fatalf("NewSearchIndex failed: %v", err)
	}
	defer index.Close()

	if err := index.Rebuild(store); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	matches, err := index.Search("lesions", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("len(matches) = %d, want 1 after rebuild", len(matches))
	}
}
