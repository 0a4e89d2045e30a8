package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Message is one persisted transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rendered  string    `json:"rendered,omitempty"` // cached terminal markdown rendering
	Timestamp time.Time `json:"timestamp"`
}

// Session is a persisted conversation. ID names the file on disk;
// RemoteID is the opaque conversation id the backend assigned on the
// first successful exchange, kept for all later requests.
type Session struct {
	ID        string    `json:"id"`
	RemoteID  string    `json:"remote_id,omitempty"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	CropType  string    `json:"crop_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// SessionMetadata is a lightweight version of Session for listing.
type SessionMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Language     string    `json:"language"`
	CropType     string    `json:"crop_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// SessionStorage handles session persistence.
type SessionStorage struct {
	sessionsDir string
}

// NewSessionStorage creates a session store under dataDir.
func NewSessionStorage(dataDir string) (*SessionStorage, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")

	// 0700 - conversations are private to the user
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &SessionStorage{sessionsDir: sessionsDir}, nil
}

// Save writes a session to disk, assigning a local id when missing.
func (s *SessionStorage) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(s.sessionsDir, session.ID+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session from disk.
func (s *SessionStorage) Load(id string) (*Session, error) {
	path := filepath.Join(s.sessionsDir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// List returns metadata for all sessions, newest first.
func (s *SessionStorage) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessions []SessionMetadata

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.sessionsDir, entry.Name()))
		if err != nil {
			continue // skip corrupted files
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue // skip corrupted files
		}

		sessions = append(sessions, SessionMetadata{
			ID:           session.ID,
			Name:         session.Name,
			Language:     session.Language,
			CropType:     session.CropType,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session from disk.
func (s *SessionStorage) Delete(id string) error {
	if err := os.Remove(filepath.Join(s.sessionsDir, id+".json")); err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Rename updates the display name of a session.
func (s *SessionStorage) Rename(id string, newName string) error {
	session, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Name = newName

	if err := s.Save(session); err != nil {
		return fmt.Errorf("failed to save renamed session: %w", err)
	}

	return nil
}

// SaveCurrentSessionID records the session to resume at next startup.
func (s *SessionStorage) SaveCurrentSessionID(id string) error {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	return os.WriteFile(path, []byte(id), 0600)
}

// LoadCurrentSessionID returns the id of the last active session.
func (s *SessionStorage) LoadCurrentSessionID() (string, error) {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// GenerateSessionName derives a session name from the first user message.
func GenerateSessionName(firstMessage string) string {
	if firstMessage == "" {
		return fmt.Sprintf("Session %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	name := firstMessage
	if len(name) > 30 {
		name = name[:30] + "..."
	}

	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Sprintf("Session %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	return name
}

// MessageMatch is a search hit within a single session.
type MessageMatch struct {
	MessageIndex int
	Role         string
	Content      string
	Preview      string
	Timestamp    time.Time
}

// SearchMessages scans the given transcript for a substring match.
func SearchMessages(messages []Message, query string) []MessageMatch {
	if query == "" {
		return []MessageMatch{}
	}

	queryLower := strings.ToLower(query)
	var matches []MessageMatch

	for i, msg := range messages {
		if msg.Role == "system" {
			continue
		}

		if strings.Contains(strings.ToLower(msg.Content), queryLower) {
			preview := msg.Content
			if len(preview) > 100 {
				preview = preview[:100] + "..."
			}

			matches = append(matches, MessageMatch{
				MessageIndex: i,
				Role:         msg.Role,
				Content:      msg.Content,
				Preview:      preview,
				Timestamp:    msg.Timestamp,
			})
		}
	}

	return matches
}

// LockInstance writes a PID lock so a second client does not fight over
// the audio device and the session files.
func (s *SessionStorage) LockInstance() error {
	lockPath := filepath.Join(filepath.Dir(s.sessionsDir), "agriguard.lock")
	return os.WriteFile(lockPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0600)
}

// UnlockInstance removes the instance lock.
func (s *SessionStorage) UnlockInstance() error {
	lockPath := filepath.Join(filepath.Dir(s.sessionsDir), "agriguard.lock")
	err := os.Remove(lockPath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CheckInstanceLock reports whether another client appears to be
// running, and its PID. Stale or malformed locks are cleaned up.
func (s *SessionStorage) CheckInstanceLock() (bool, int, error) {
	lockPath := filepath.Join(filepath.Dir(s.sessionsDir), "agriguard.lock")

	data, err := os.ReadFile(lockPath)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read lock file: %w", err)
	}

	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil {
		_ = os.Remove(lockPath)
		return false, 0, nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(lockPath)
		return false, 0, nil
	}

	// Signal 0 probes for existence without delivering anything.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = os.Remove(lockPath)
		return false, 0, nil
	}

	return true, pid, nil
}
