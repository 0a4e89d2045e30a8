package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Preferences is a durable string key-value store backed by a single
// JSON file. The language selection lives here under its well-known
// key, alongside any other small client settings.
type Preferences struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewPreferences loads (or creates) the preference file under dataDir.
func NewPreferences(dataDir string) (*Preferences, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	p := &Preferences{
		path:   filepath.Join(dataDir, "preferences.json"),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &p.values); err != nil {
		// A corrupted preference file should not brick the client.
		// Keep it aside for inspection and start fresh.
		_ = os.Rename(p.path, p.path+".corrupted")
		p.values = make(map[string]string)
	}

	return p, nil
}

// Get returns the stored value for key.
func (p *Preferences) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.values[key]
	return value, ok
}

// Set stores value under key and flushes to disk.
func (p *Preferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = value
	return p.flush()
}

// Delete removes key and flushes to disk.
func (p *Preferences) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.values, key)
	return p.flush()
}

// flush writes the map to disk. Callers must hold the write lock.
func (p *Preferences) flush() error {
	data, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}
