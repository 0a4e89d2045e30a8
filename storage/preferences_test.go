package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPreferencesRoundTrip(t *testing.T) {
	dir := t.TempDir()

	prefs, err := NewPreferences(dir)
	if err != nil {
		t.Fatalf("NewPreferences failed: %v", err)
	}

	if _, ok := prefs.Get("agriguard-language"); ok {
		t.Error("expected no value in a fresh store")
	}

	if err := prefs.Set("agriguard-language", "hi-IN"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok := prefs.Get("agriguard-language")
	if !ok || value != "hi-IN" {
		t.Errorf("Get = %q, %v, want %q, true", value, ok, "hi-IN")
	}

	// A fresh instance must see the persisted value.
	reopened, err := NewPreferences(dir)
	if err != nil {
		t.Fatalf("NewPreferences (reopen) failed: %v", err)
	}

	value, ok = reopened.Get("agriguard-language")
	if !ok || value != "hi-IN" {
		t.Errorf("after reopen Get = %q, %v, want %q, true", value, ok, "hi-IN")
	}
}

func TestPreferencesDelete(t *testing.T) {
	dir := t.TempDir()

	prefs, err := NewPreferences(dir)
	if err != nil {
		t.Fatalf("NewPreferences failed: %v", err)
	}

	if err := prefs.Set("theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := prefs.Delete("theme"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, ok := prefs.Get("theme"); ok {
		t.Error("expected key to be gone after Delete")
	}
}

func TestPreferencesCorruptedFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "preferences.json")
	if err := os.WriteFile(path, []byte("not json{{{"), 0600); err != nil {
		t.Fatalf("failed to write corrupted file: %v", err)
	}

	prefs, err := NewPreferences(dir)
	if err != nil {
		t.Fatalf("NewPreferences should recover from corruption, got: %v", err)
	}

	if _, ok := prefs.Get("agriguard-language"); ok {
		t.Error("expected empty store after corruption recovery")
	}

	if _, err := os.Stat(path + ".corrupted"); err != nil {
		t.Errorf("expected corrupted file to be kept aside: %v", err)
	}
}
