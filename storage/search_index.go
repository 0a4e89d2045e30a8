package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SessionMessageMatch is a search hit across all stored sessions.
type SessionMessageMatch struct {
	SessionID    string
	SessionName  string
	MessageIndex int
	Role         string
	Preview      string
	Timestamp    time.Time
}

// SearchIndex is a SQLite full-text index over every session
// transcript, so history search stays fast as conversations pile up
// over a growing season.
type SearchIndex struct {
	db *sql.DB
}

// NewSearchIndex opens (or creates) the index database under dataDir.
func NewSearchIndex(dataDir string) (*SearchIndex, error) {
	dbPath := filepath.Join(dataDir, "search_index.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	index := &SearchIndex{db: db}

	if err := index.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return index, nil
}

// initialize creates the FTS table if needed.
func (s *SearchIndex) initialize() error {
	schema := `
	CREATE VIRTUAL TABLE IF NOT EXISTS messages USING fts5(
		session_id UNINDEXED,
		session_name UNINDEXED,
		message_idx UNINDEXED,
		role UNINDEXED,
		content,
		timestamp UNINDEXED
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// IndexSession replaces the indexed rows for one session with its
// current transcript.
func (s *SearchIndex) IndexSession(session *Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to clear session rows: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (session_id, session_name, message_idx, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range session.Messages {
		if msg.Role == "system" {
			continue
		}

		_, err := stmt.Exec(session.ID, session.Name, i, msg.Role, msg.Content,
			msg.Timestamp.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveSession drops all indexed rows for a deleted session.
func (s *SearchIndex) RemoveSession(sessionID string) error {
	if _, err := s.db.Exec("DELETE FROM messages WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to remove session rows: %w", err)
	}
	return nil
}

// Search runs a full-text query across all indexed sessions. Results
// come back best match first.
func (s *SearchIndex) Search(query string, limit int) ([]SessionMessageMatch, error) {
	if strings.TrimSpace(query) == "" {
		return []SessionMessageMatch{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	// Phrase-quote the user's text so FTS operators in it are literal.
	phrase := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`

	rows, err := s.db.Query(`
		SELECT session_id, session_name, message_idx, role, content, timestamp
		FROM messages
		WHERE messages MATCH ?
		ORDER BY rank
		LIMIT ?
	`, phrase, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var matches []SessionMessageMatch

	for rows.Next() {
		var match SessionMessageMatch
		var content, timestamp string

		if err := rows.Scan(&match.SessionID, &match.SessionName, &match.MessageIndex,
			&match.Role, &content, &timestamp); err != nil {
			continue // skip corrupted rows
		}

		match.Preview = content
		if len(match.Preview) > 100 {
			match.Preview = match.Preview[:100] + "..."
		}

		if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
			match.Timestamp = ts
		}

		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read query results: %w", err)
	}

	return matches, nil
}

// Rebuild reindexes every session on disk, recovering from a deleted
// or stale index file.
func (s *SearchIndex) Rebuild(store *SessionStorage) error {
	metas, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, meta := range metas {
		session, err := store.Load(meta.ID)
		if err != nil {
			continue // skip corrupted files
		}
		if err := s.IndexSession(session); err != nil {
			return fmt.Errorf("failed to index session %s: %w", meta.ID, err)
		}
	}

	return nil
}

// Close releases the database handle.
func (s *SearchIndex) Close() error {
	return s.db.Close()
}
