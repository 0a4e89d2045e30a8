package voice

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Apply neem oil in the evening",
			want:  "Apply neem oil in the evening",
		},
		{
			name:  "emphasis markers stripped",
			input: "**Late Blight** detected on *tomato* leaves",
			want:  "Late Blight detected on tomato leaves",
		},
		{
			name:  "heading becomes sentence",
			input: "## Treatment\nApply neem oil",
			want:  "Treatment. Apply neem oil",
		},
		{
			name:  "link keeps text drops url",
			input: "See [Open-Meteo](https://open-meteo.com) for forecasts",
			want:  "See Open-Meteo for forecasts",
		},
		{
			name:  "list items become sentences",
			input: "- Remove infected leaves\n- Apply copper fungicide",
			want:  "Remove infected leaves. Apply copper fungicide",
		},
		{
			name:  "existing punctuation not doubled",
			input: "Act now!\nSpray tomorrow",
			want:  "Act now! Spray tomorrow",
		},
		{
			name:  "emoji stripped",
			input: "⚠️ High risk of fungal diseases",
			want:  "High risk of fungal diseases",
		},
		{
			name:  "emoji stripped from non latin text",
			input: "🌱 फसल स्वस्थ है",
			want:  "फसल स्वस्थ है",
		},
		{
			name:  "code block dropped",
			input: "Run this:\n\n```\nrm -rf spores\n```\n\nThen wait a day",
			want:  "Run this: Then wait a day",
		},
		{
			name:  "inline code spoken as words",
			input: "Use `copper sulfate` sparingly",
			want:  "Use copper sulfate sparingly",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only emoji",
			input: "🚨🌧️💧",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("spray early morning ", 100)
	got := Sanitize(long)

	if n := utf8.RuneCountInString(got); n > maxSpokenRunes {
		t.Errorf("sanitized length = %d runes, want at most %d", n, maxSpokenRunes)
	}
	if !strings.HasPrefix(got, "spray early morning") {
		t.Errorf("truncation should keep the head of the text, got %q", got[:40])
	}
}

func TestEspeakVoice(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"hi-IN", "hi"},
		{"es-ES", "es"},
		{"pt-BR", "pt"},
		{"sw", "sw"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := espeakVoice(tt.locale); got != tt.want {
			t.Errorf("espeakVoice(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
