package voice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeSynth struct {
	mu        sync.Mutex
	active    int
	maxActive int
	texts     []string
	locales   []string
	block     bool
}

func (f *fakeSynth) Speak(ctx context.Context, text, locale string) error {
	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.texts = append(f.texts, text)
	f.locales = append(f.locales, locale)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
	}

	f.mu.Lock()
	f.active--
	f.mu.Unlock()
	return nil
}

func (f *fakeSynth) snapshot() ([]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...), f.maxActive
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls int
	block bool
	err   error
}

func (f *fakeRecorder) Record(ctx context.Context, dest string, maxDuration time.Duration) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if f.block {
		<-ctx.Done()
		if err := os.WriteFile(dest, []byte("RIFF"), 0600); err != nil {
			return err
		}
		return ctx.Err()
	}
	return os.WriteFile(dest, []byte("RIFF"), 0600)
}

func (f *fakeRecorder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSpeakWithoutSynthesizerIsNoOp(t *testing.T) {
	a := NewAdapter(nil, nil)

	if err := a.Speak("hello"); err != nil {
		t.Fatalf("Speak without synthesizer should be a no-op, got %v", err)
	}
	if a.Speaking() {
		t.Error("Speaking() should stay false without a synthesizer")
	}
	if a.SpeechAvailable() {
		t.Error("SpeechAvailable() should be false without a synthesizer")
	}
}

func TestSpeakPassesSanitizedText(t *testing.T) {
	fake := &fakeSynth{}
	a := NewAdapter(fake, nil)

	if err := a.Speak("**High** risk 🚨 today"); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	texts, _ := fake.snapshot()
	if len(texts) != 1 || texts[0] != "High risk today" {
		t.Errorf("spoken texts = %v, want [\"High risk today\"]", texts)
	}
}

func TestSpeakSkipsEmptyAfterSanitize(t *testing.T) {
	fake := &fakeSynth{}
	a := NewAdapter(fake, nil)

	if err := a.Speak("🚨🌧️"); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	texts, _ := fake.snapshot()
	if len(texts) != 0 {
		t.Errorf("emoji-only text should not reach the synthesizer, got %v", texts)
	}
}

func TestSpeakCancelsPreviousUtterance(t *testing.T) {
	fake := &fakeSynth{block: true}
	a := NewAdapter(fake, nil)

	first := make(chan error, 1)
	go func() { first <- a.Speak("first message") }()
	waitFor(t, a.Speaking)

	second := make(chan error, 1)
	go func() { second <- a.Speak("second message") }()

	if err := <-first; err != nil {
		t.Fatalf("canceled utterance should return nil, got %v", err)
	}

	a.StopSpeaking()
	if err := <-second; err != nil {
		t.Fatalf("stopped utterance should return nil, got %v", err)
	}

	texts, maxActive := fake.snapshot()
	if maxActive != 1 {
		t.Errorf("max concurrent utterances = %d, want 1", maxActive)
	}
	if len(texts) != 2 {
		t.Errorf("synthesizer saw %d utterances, want 2", len(texts))
	}
	waitFor(t, func() bool { return !a.Speaking() })
}

func TestStopSpeaking(t *testing.T) {
	fake := &fakeSynth{block: true}
	a := NewAdapter(fake, nil)

	result := make(chan error, 1)
	go func() { result <- a.Speak("a long weather report") }()
	waitFor(t, a.Speaking)

	a.StopSpeaking()
	if err := <-result; err != nil {
		t.Fatalf("stopped utterance should return nil, got %v", err)
	}
	waitFor(t, func() bool { return !a.Speaking() })
}

func TestSetLocaleAppliesToNextUtterance(t *testing.T) {
	fake := &fakeSynth{}
	a := NewAdapter(fake, nil)

	a.SetLocale("hi-IN")
	if err := a.Speak("namaste"); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}
	a.SetLocale("es-ES")
	if err := a.Speak("hola"); err != nil {
		t.Fatalf("Speak failed: %v", err)
	}

	fake.mu.Lock()
	locales := append([]string(nil), fake.locales...)
	fake.mu.Unlock()
	if len(locales) != 2 || locales[0] != "hi-IN" || locales[1] != "es-ES" {
		t.Errorf("locales = %v, want [hi-IN es-ES]", locales)
	}
}

func TestCaptureWritesFile(t *testing.T) {
	fake := &fakeRecorder{}
	a := NewAdapter(nil, fake)

	path, err := a.Capture(t.TempDir())
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if filepath.Base(path) != "utterance.wav" {
		t.Errorf("capture path = %q, want utterance.wav", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("captured file missing: %v", err)
	}
}

func TestCaptureWithoutRecorderIsNoOp(t *testing.T) {
	a := NewAdapter(nil, nil)

	path, err := a.Capture(t.TempDir())
	if err != nil {
		t.Fatalf("Capture without recorder should be a no-op, got %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
}

func TestStopCaptureReturnsPartialRecording(t *testing.T) {
	fake := &fakeRecorder{block: true}
	a := NewAdapter(nil, fake)

	type captureResult struct {
		path string
		err  error
	}
	result := make(chan captureResult, 1)
	go func() {
		path, err := a.Capture(t.TempDir())
		result <- captureResult{path, err}
	}()
	waitFor(t, a.Listening)

	a.StopCapture()
	got := <-result
	if got.err != nil {
		t.Fatalf("stopped capture should return the partial file, got error %v", got.err)
	}
	if got.path == "" {
		t.Error("stopped capture should still return the recorded path")
	}
	waitFor(t, func() bool { return !a.Listening() })
}

func TestCaptureRejectsConcurrentCapture(t *testing.T) {
	fake := &fakeRecorder{block: true}
	a := NewAdapter(nil, fake)

	result := make(chan error, 1)
	go func() {
		_, err := a.Capture(t.TempDir())
		result <- err
	}()
	waitFor(t, a.Listening)

	path, err := a.Capture(t.TempDir())
	if err != nil || path != "" {
		t.Errorf("second capture should be a no-op, got path=%q err=%v", path, err)
	}
	if n := fake.callCount(); n != 1 {
		t.Errorf("recorder called %d times, want 1", n)
	}

	a.StopCapture()
	if err := <-result; err != nil {
		t.Fatalf("first capture failed: %v", err)
	}
}

func TestCaptureReportsRecorderError(t *testing.T) {
	fake := &fakeRecorder{err: errors.New("no input device")}
	a := NewAdapter(nil, fake)

	_, err := a.Capture(t.TempDir())
	if err == nil {
		t.Fatal("expected recorder error to surface")
	}
}
