package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider("test-key")
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	p.baseURL = srv.URL
	return p
}

func TestGeminiChat(t *testing.T) {
	var got geminiRequest
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("key = %q, want %q", key, "test-key")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Use neem oil weekly."}]}}]}`))
	})

	reply, err := p.Chat(context.Background(), []Message{
		{Role: RoleUser, Content: "My tomatoes have aphids."},
		{Role: RoleAssistant, Content: "How widespread is it?"},
		{Role: RoleUser, Content: "Just a few plants."},
	}, "You are an agronomist.")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Use neem oil weekly." {
		t.Errorf("reply = %q", reply)
	}

	if len(got.Contents) != 3 {
		t.Fatalf("contents length = %d, want 3", len(got.Contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, want := range wantRoles {
		if got.Contents[i].Role != want {
			t.Errorf("contents[%d].role = %q, want %q", i, got.Contents[i].Role, want)
		}
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "You are an agronomist." {
		t.Errorf("system_instruction = %+v", got.SystemInstruction)
	}
}

func TestGeminiGenerateFoldsSystemPrompt(t *testing.T) {
	var got geminiRequest
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	if _, err := p.Generate(context.Background(), "How do I treat late blight?", "Be brief."); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(got.Contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(got.Contents))
	}
	want := "Be brief.\n\nHow do I treat late blight?"
	if got.Contents[0].Parts[0].Text != want {
		t.Errorf("prompt = %q, want %q", got.Contents[0].Parts[0].Text, want)
	}
	if got.SystemInstruction != nil {
		t.Error("single-shot generate should not carry system_instruction")
	}
}

func TestGeminiAnalyzeImage(t *testing.T) {
	var got geminiRequest
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Late blight."}]}}]}`))
	})

	reply, err := p.AnalyzeImage(context.Background(), "aGVsbG8=", "What disease is this?")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if reply != "Late blight." {
		t.Errorf("reply = %q", reply)
	}

	parts := got.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("parts length = %d, want 2", len(parts))
	}
	if parts[0].Text != "What disease is this?" {
		t.Errorf("parts[0].text = %q", parts[0].Text)
	}
	if parts[1].InlineData == nil {
		t.Fatal("parts[1].inline_data missing")
	}
	if parts[1].InlineData.MimeType != "image/jpeg" {
		t.Errorf("mime_type = %q, want image/jpeg", parts[1].InlineData.MimeType)
	}
	if parts[1].InlineData.Data != "aGVsbG8=" {
		t.Errorf("data = %q", parts[1].InlineData.Data)
	}
}

func TestGeminiServerError(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := p.Generate(context.Background(), "hello", "")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "gemini returned 429") {
		t.Errorf("error = %q, want status code mentioned", err)
	}
}

func TestGeminiEmptyCandidates(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := p.Generate(context.Background(), "hello", ""); err == nil {
		t.Error("expected error for empty candidates")
	}
}
