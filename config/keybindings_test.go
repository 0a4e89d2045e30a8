package config

import "testing"

func TestGetActionKey(t *testing.T) {
	kb := DefaultKeybindings()

	tests := []struct {
		action string
		want   string
	}{
		{"help", "alt+h"},
		{"new_session", "alt+n"},
		{"weather_tab", "alt+3"},
		{"search_all_sessions", "alt+F"}, // secondary with shift folds to uppercase
		{"list_down", "j"},
		{"list_down_filtered", "alt+j"},
		{"no_such_action", ""},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := kb.GetActionKey(tt.action); got != tt.want {
				t.Errorf("GetActionKey(%q) = %q, want %q", tt.action, got, tt.want)
			}
		})
	}
}

func TestActionOverrides(t *testing.T) {
	kb := DefaultKeybindings()
	kb.Actions = map[string]string{"quit": "ctrl+shift+q"}

	if got := kb.GetActionKey("quit"); got != "ctrl+shift+q" {
		t.Errorf("override ignored: got %q", got)
	}
	if got := kb.GetActionKey("help"); got != "alt+h" {
		t.Errorf("non-overridden action changed: got %q", got)
	}
}

func TestSecondaryKeyWithoutShift(t *testing.T) {
	kb := &KeyBindingsConfig{
		Modifiers: ModifierConfig{Primary: "ctrl", Secondary: "ctrl+alt"},
	}

	if got := kb.SecondaryKey("f"); got != "ctrl+alt+f" {
		t.Errorf("SecondaryKey(\"f\") = %q, want ctrl+alt+f", got)
	}
	if got := kb.SecondaryKey("f1"); got != "ctrl+alt+f1" {
		t.Errorf("SecondaryKey(\"f1\") = %q, want ctrl+alt+f1", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		wantValid bool
	}{
		{"defaults", "alt", "alt+shift", true},
		{"ctrl allowed with warning", "ctrl", "ctrl+shift", true},
		{"bare shift rejected", "shift", "alt+shift", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := &KeyBindingsConfig{
				Modifiers: ModifierConfig{Primary: tt.primary, Secondary: tt.secondary},
			}
			valid, _ := kb.Validate()
			if valid != tt.wantValid {
				t.Errorf("Validate() = %v, want %v", valid, tt.wantValid)
			}
		})
	}
}

func TestDisplayActionKey(t *testing.T) {
	kb := DefaultKeybindings()

	if got := kb.DisplayActionKey("help"); got != "Alt+H" {
		t.Errorf("DisplayActionKey(\"help\") = %q, want Alt+H", got)
	}
	if got := kb.DisplayActionKey("search_all_sessions"); got != "Alt+Shift+F" {
		t.Errorf("DisplayActionKey(\"search_all_sessions\") = %q, want Alt+Shift+F", got)
	}
}
