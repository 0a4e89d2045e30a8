package agronomist

import (
	"path/filepath"
	"testing"

	"agriguard/provider"
)

func TestHistoryStoreImplementations(t *testing.T) {
	var _ HistoryStore = (*BoltHistory)(nil)
	var _ HistoryStore = (*MemoryHistory)(nil)
}

func TestMemoryHistory(t *testing.T) {
	store := NewMemoryHistory()

	if err := store.Append("s1", provider.Message{Role: provider.RoleUser, Content: "hello"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("s1", provider.Message{Role: provider.RoleAssistant, Content: "hi there"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("s2", provider.Message{Role: provider.RoleUser, Content: "other session"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	history, err := store.History("s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Content != "hello" || history[1].Role != provider.RoleAssistant {
		t.Fatalf("History = %+v", history)
	}

	// Callers get a copy, not a window into the store.
	history[0].Content = "mutated"
	again, _ := store.History("s1")
	if again[0].Content != "hello" {
		t.Errorf("store leaked its backing slice: %+v", again)
	}

	if err := store.Clear("s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared, _ := store.History("s1"); len(cleared) != 0 {
		t.Errorf("History after Clear = %+v", cleared)
	}
	if other, _ := store.History("s2"); len(other) != 1 {
		t.Errorf("Clear dropped an unrelated session: %+v", other)
	}

	if missing, err := store.History("ghost"); err != nil || len(missing) != 0 {
		t.Errorf("History(ghost) = %+v, %v", missing, err)
	}
}

func TestBoltHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")

	store, err := NewBoltHistory(path)
	if err != nil {
		t.Fatalf("NewBoltHistory: %v", err)
	}
	if err := store.Append("s1", provider.Message{Role: provider.RoleUser, Content: "first"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("s1", provider.Message{Role: provider.RoleAssistant, Content: "second"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	history, err := store.History("s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Content != "first" || history[1].Content != "second" {
		t.Fatalf("History = %+v", history)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Sessions survive a restart.
	reopened, err := NewBoltHistory(path)
	if err != nil {
		t.Fatalf("NewBoltHistory reopen: %v", err)
	}
	defer reopened.Close()

	history, err = reopened.History("s1")
	if err != nil {
		t.Fatalf("History after reopen: %v", err)
	}
	if len(history) != 2 || history[1].Content != "second" {
		t.Fatalf("History after reopen = %+v", history)
	}

	if err := reopened.Clear("s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared, _ := reopened.History("s1"); len(cleared) != 0 {
		t.Errorf("History after Clear = %+v", cleared)
	}

	if missing, err := reopened.History("ghost"); err != nil || len(missing) != 0 {
		t.Errorf("History(ghost) = %+v, %v", missing, err)
	}
}
