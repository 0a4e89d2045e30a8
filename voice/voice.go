// Package voice adapts chat text to spoken output and microphone
// capture to pending input. Both directions are capability-gated:
// when no synthesis or recording command exists on this machine, every
// operation is a silent no-op and the UI hides the controls.
package voice

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxUtterance bounds a single microphone capture.
const MaxUtterance = 15 * time.Second

// Synthesizer speaks text aloud until done or the context is canceled.
type Synthesizer interface {
	Speak(ctx context.Context, text, locale string) error
}

// Recorder captures microphone audio into dest until the duration
// elapses or the context is canceled.
type Recorder interface {
	Record(ctx context.Context, dest string, maxDuration time.Duration) error
}

type activity struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Adapter owns the speech state: at most one utterance audible and at
// most one capture running at any time.
type Adapter struct {
	synth Synthesizer
	rec   Recorder

	mu        sync.Mutex
	locale    string
	utterance *activity
	capture   *activity
}

// NewAdapter wires an adapter from the given engines. Either may be
// nil, which disables that direction.
func NewAdapter(synth Synthesizer, rec Recorder) *Adapter {
	return &Adapter{synth: synth, rec: rec}
}

// Detect probes PATH for known engines and builds an adapter from
// whatever is installed.
func Detect() *Adapter {
	return NewAdapter(DetectSynthesizer(), DetectRecorder())
}

// SpeechAvailable reports whether synthesis can work on this machine.
func (a *Adapter) SpeechAvailable() bool {
	return a.synth != nil
}

// CaptureAvailable reports whether recording can work on this machine.
func (a *Adapter) CaptureAvailable() bool {
	return a.rec != nil
}

// SetLocale selects the voice for subsequent utterances and captures.
// An utterance already playing is not affected.
func (a *Adapter) SetLocale(code string) {
	a.mu.Lock()
	a.locale = code
	a.mu.Unlock()
}

// Speak sanitizes text and speaks it, canceling any utterance already
// in progress first. It blocks until the utterance finishes or is
// canceled. No synthesizer, or nothing left after sanitizing, is a
// silent no-op.
func (a *Adapter) Speak(text string) error {
	if a.synth == nil {
		return nil
	}

	clean := Sanitize(text)
	if clean == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	current := &activity{cancel: cancel, done: make(chan struct{})}

	a.mu.Lock()
	previous := a.utterance
	a.utterance = current
	locale := a.locale
	a.mu.Unlock()

	// Cancel-before-start: the old utterance must be fully stopped
	// before the new one becomes audible.
	if previous != nil {
		previous.cancel()
		<-previous.done
	}

	err := a.synth.Speak(ctx, clean, locale)
	close(current.done)
	cancel()

	a.mu.Lock()
	if a.utterance == current {
		a.utterance = nil
	}
	a.mu.Unlock()

	if ctx.Err() != nil {
		return nil // stopped on purpose
	}
	return err
}

// StopSpeaking cancels the current utterance, if any. Takes effect
// immediately.
func (a *Adapter) StopSpeaking() {
	a.mu.Lock()
	current := a.utterance
	a.mu.Unlock()

	if current != nil {
		current.cancel()
	}
}

// Speaking reports whether an utterance is in progress.
func (a *Adapter) Speaking() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.utterance != nil
}

// Capture records one bounded utterance into destDir and returns the
// recorded file path. A stop during capture ends the recording early
// but still returns the partial file. No recorder, or a capture
// already running, is a silent no-op returning an empty path.
func (a *Adapter) Capture(destDir string) (string, error) {
	if a.rec == nil {
		return "", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	current := &activity{cancel: cancel, done: make(chan struct{})}

	a.mu.Lock()
	if a.capture != nil {
		a.mu.Unlock()
		cancel()
		return "", nil
	}
	a.capture = current
	a.mu.Unlock()

	defer func() {
		close(current.done)
		cancel()
		a.mu.Lock()
		if a.capture == current {
			a.capture = nil
		}
		a.mu.Unlock()
	}()

	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", err
	}
	dest := filepath.Join(destDir, "utterance.wav")

	err := a.rec.Record(ctx, dest, MaxUtterance)
	if err != nil && ctx.Err() == nil {
		return "", err
	}

	// Stopped early or ran to the cap: either way the file is usable.
	if _, statErr := os.Stat(dest); statErr != nil {
		return "", nil
	}
	return dest, nil
}

// StopCapture ends the current recording early, if any.
func (a *Adapter) StopCapture() {
	a.mu.Lock()
	current := a.capture
	a.mu.Unlock()

	if current != nil {
		current.cancel()
	}
}

// Listening reports whether a capture is in progress.
func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capture != nil
}
