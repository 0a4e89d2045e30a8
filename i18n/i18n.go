// Package i18n holds the UI string catalogs and the active-language
// state for the terminal client.
//
// Catalogs are YAML documents embedded in the binary, one file per
// language code. The en-US catalog defines the full key set; other
// catalogs may cover any subset of it. Translate never fails: a key
// missing from the requested language falls back through a base-subtag
// match, then the default language, then the key itself.
package i18n

import (
	"embed"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var locales embed.FS

var (
	catalogOnce sync.Once
	catalogs    map[string]map[string]string
)

// tables loads the embedded catalogs on first use. A malformed catalog
// file is skipped rather than failing the load; lookups against it then
// resolve through the fallback chain.
func tables() map[string]map[string]string {
	catalogOnce.Do(func() {
		catalogs = make(map[string]map[string]string)
		entries, err := locales.ReadDir("locales")
		if err != nil {
			return
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
				continue
			}
			data, err := locales.ReadFile(path.Join("locales", name))
			if err != nil {
				continue
			}
			table := make(map[string]string)
			if err := yaml.Unmarshal(data, &table); err != nil {
				continue
			}
			catalogs[strings.TrimSuffix(name, ".yaml")] = table
		}
	})
	return catalogs
}

// Translate returns the localized string for key in the given language.
// Resolution order: exact catalog, then the first registered language
// sharing the base subtag, then the default language, then the raw key.
// It is total over all inputs and never returns an empty string for a
// key defined in the default catalog.
func Translate(code, key string) string {
	t := tables()
	if table, ok := t[code]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if match, ok := matchBase(code); ok && match != code {
		if s, ok := t[match][key]; ok {
			return s
		}
	}
	if s, ok := t[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Keys returns every key defined in the default-language catalog.
func Keys() []string {
	table := tables()[DefaultLanguage]
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	return keys
}
