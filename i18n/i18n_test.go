package i18n

import "testing"

func TestTranslateTotality(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("default catalog did not load")
	}
	for _, lang := range Registry {
		for _, key := range keys {
			got := Translate(lang.Code, key)
			if got == "" {
				t.Fatalf("Translate(%q, %q) returned empty string", lang.Code, key)
			}
		}
	}
}

func TestTranslateFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		code string
		key  string
		want string
	}{
		{name: "exact hit", code: "es-ES", key: "send", want: "Enviar"},
		{name: "missing key falls back to default", code: "fr-FR", key: "appName", want: "AgriGuard"},
		{name: "bare base subtag matches region variant", code: "es", key: "send", want: "Enviar"},
		{name: "unregistered region matches sibling", code: "es-MX", key: "send", want: "Enviar"},
		{name: "bare en resolves to default", code: "en", key: "appName", want: "AgriGuard"},
		{name: "unknown language falls back to default", code: "sw-KE", key: "send", want: "Send"},
		{name: "unknown key returns the key", code: "en-US", key: "noSuchKey", want: "noSuchKey"},
		{name: "empty code falls back to default", code: "", key: "send", want: "Send"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Translate(tc.code, tc.key)
			if got != tc.want {
				t.Fatalf("Translate(%q, %q) = %q, want %q", tc.code, tc.key, got, tc.want)
			}
		})
	}
}

func TestDefaultCatalogIsSuperset(t *testing.T) {
	def := tables()[DefaultLanguage]
	for code, table := range tables() {
		for key := range table {
			if _, ok := def[key]; !ok {
				t.Fatalf("catalog %q defines %q which is missing from the default catalog", code, key)
			}
		}
	}
}

func TestBaseSubtag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "en-US", want: "en"},
		{in: "pt_BR", want: "pt"},
		{in: "HI-IN", want: "hi"},
		{in: "es", want: "es"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := BaseSubtag(tc.in)
		if got != tc.want {
			t.Fatalf("BaseSubtag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Run("registered", func(t *testing.T) {
		l, ok := Lookup("hi-IN")
		if !ok || l.Name != "Hindi" || l.Flag == "" || l.Greeting == "" {
			t.Fatalf("unexpected entry: %#v", l)
		}
	})

	t.Run("unregistered", func(t *testing.T) {
		if _, ok := Lookup("xx-XX"); ok {
			t.Fatal("expected no entry for xx-XX")
		}
	})
}
