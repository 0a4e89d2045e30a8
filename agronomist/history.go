package agronomist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"agriguard/provider"
)

// HistoryStore keeps per-session conversation turns in order.
type HistoryStore interface {
	Append(sessionID string, msg provider.Message) error
	History(sessionID string) ([]provider.Message, error)
	Clear(sessionID string) error
}

var historyBucket = []byte("chat_history")

// BoltHistory persists conversation turns in a bbolt bucket so chat
// context survives server restarts. Each session is stored as one
// JSON-encoded message slice keyed by session id.
type BoltHistory struct {
	db *bolt.DB
}

// NewBoltHistory opens (or creates) the history database at path.
func NewBoltHistory(path string) (*BoltHistory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}
	return &BoltHistory{db: db}, nil
}

func (h *BoltHistory) Append(sessionID string, msg provider.Message) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(historyBucket)
		var history []provider.Message
		if raw := bucket.Get([]byte(sessionID)); len(raw) > 0 {
			if err := json.Unmarshal(raw, &history); err != nil {
				// Malformed record: restart the session rather than wedging it.
				history = nil
			}
		}
		history = append(history, msg)
		data, err := json.Marshal(history)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(sessionID), data)
	})
}

func (h *BoltHistory) History(sessionID string) ([]provider.Message, error) {
	var history []provider.Message
	err := h.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(historyBucket).Get([]byte(sessionID))
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &history); err != nil {
			history = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (h *BoltHistory) Clear(sessionID string) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(historyBucket).Delete([]byte(sessionID))
	})
}

// Close releases the underlying database file.
func (h *BoltHistory) Close() error {
	return h.db.Close()
}

// MemoryHistory keeps conversation turns in process memory. Sessions
// are gone after a restart; tests use it to avoid touching disk.
type MemoryHistory struct {
	mu       sync.Mutex
	sessions map[string][]provider.Message
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: make(map[string][]provider.Message)}
}

func (h *MemoryHistory) Append(sessionID string, msg provider.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = append(h.sessions[sessionID], msg)
	return nil
}

func (h *MemoryHistory) History(sessionID string) ([]provider.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	history := h.sessions[sessionID]
	out := make([]provider.Message, len(history))
	copy(out, history)
	return out, nil
}

func (h *MemoryHistory) Clear(sessionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
	return nil
}
