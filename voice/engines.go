package voice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// commandSynthesizer speaks through a local TTS command.
type commandSynthesizer struct {
	path string
	name string
}

// DetectSynthesizer returns a synthesizer backed by the first TTS
// command found on PATH, or nil when none is installed.
func DetectSynthesizer() Synthesizer {
	for _, name := range []string{"say", "espeak-ng", "espeak", "festival"} {
		if path, err := exec.LookPath(name); err == nil {
			return &commandSynthesizer{path: path, name: name}
		}
	}
	return nil
}

func (s *commandSynthesizer) Speak(ctx context.Context, text, locale string) error {
	var cmd *exec.Cmd
	switch s.name {
	case "say":
		cmd = exec.CommandContext(ctx, s.path, text)
	case "espeak-ng", "espeak":
		args := []string{}
		if voice := espeakVoice(locale); voice != "" {
			args = append(args, "-v", voice)
		}
		args = append(args, text)
		cmd = exec.CommandContext(ctx, s.path, args...)
	case "festival":
		cmd = exec.CommandContext(ctx, s.path, "--tts")
		cmd.Stdin = strings.NewReader(text)
	default:
		return fmt.Errorf("unknown speech engine: %s", s.name)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run %s: %w", s.name, err)
	}
	return nil
}

// espeakVoice maps a language code like "hi-IN" to an espeak voice
// name like "hi".
func espeakVoice(locale string) string {
	if locale == "" {
		return ""
	}
	base, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(base)
}

// commandRecorder captures microphone audio through a local recording
// command.
type commandRecorder struct {
	path string
	name string
}

// DetectRecorder returns a recorder backed by the first capture
// command found on PATH, or nil when none is installed.
func DetectRecorder() Recorder {
	for _, name := range []string{"rec", "sox", "arecord", "ffmpeg"} {
		if path, err := exec.LookPath(name); err == nil {
			return &commandRecorder{path: path, name: name}
		}
	}
	return nil
}

func (r *commandRecorder) Record(ctx context.Context, dest string, maxDuration time.Duration) error {
	seconds := fmt.Sprintf("%d", int(maxDuration.Seconds()))

	var cmd *exec.Cmd
	switch r.name {
	case "rec":
		cmd = exec.CommandContext(ctx, r.path, "-q", "-c", "1", "-r", "16000", dest, "trim", "0", seconds)
	case "sox":
		cmd = exec.CommandContext(ctx, r.path, "-q", "-d", "-c", "1", "-r", "16000", dest, "trim", "0", seconds)
	case "arecord":
		cmd = exec.CommandContext(ctx, r.path, "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-d", seconds, dest)
	case "ffmpeg":
		cmd = exec.CommandContext(ctx, r.path, "-y", "-loglevel", "error", "-f", "alsa", "-i", "default", "-t", seconds, "-ar", "16000", "-ac", "1", dest)
	default:
		return fmt.Errorf("unknown recording engine: %s", r.name)
	}

	// Interrupt instead of kill so the recorder finalizes the WAV
	// header before exiting.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 2 * time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run %s: %w", r.name, err)
	}
	return nil
}
