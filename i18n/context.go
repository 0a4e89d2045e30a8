package i18n

import "sync"

// PreferenceKey is the durable-store key holding the active language code.
const PreferenceKey = "agriguard-language"

// Store persists string preferences across runs.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Context holds the active language for one client process. There is a
// single writer (the UI event loop); reads may come from command
// goroutines.
type Context struct {
	mu    sync.RWMutex
	code  string
	store Store
}

// NewContext builds a Context seeded from the store's persisted code.
// A nil store, a missing key, or an empty value all fall back to the
// default language.
func NewContext(store Store) *Context {
	c := &Context{code: DefaultLanguage, store: store}
	if store != nil {
		if code, ok := store.Get(PreferenceKey); ok && code != "" {
			c.code = code
		}
	}
	return c
}

// Active returns the current language code.
func (c *Context) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code
}

// ActiveLanguage returns the registry entry for the current code, or
// the first registry entry when the code is unregistered.
func (c *Context) ActiveLanguage() Language {
	if l, ok := Lookup(c.Active()); ok {
		return l
	}
	return Registry[0]
}

// SetActive switches the active language and persists it. Any string is
// accepted; only registry members have full catalog coverage, the rest
// resolve through the fallback chain. The in-memory switch happens even
// when the persisted write fails.
func (c *Context) SetActive(code string) error {
	c.mu.Lock()
	c.code = code
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	return c.store.Set(PreferenceKey, code)
}

// T translates key in the active language.
func (c *Context) T(key string) string {
	return Translate(c.Active(), key)
}
