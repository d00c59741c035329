package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Paste delivery sources.
const (
	SourceMenu   = "menu"
	SourceHotkey = "hotkey"
)

// Paste is a single recorded delivery of a prompt into the focused
// application.
type Paste struct {
	ID             int64
	Timestamp      time.Time
	PromptKey      string
	Source         string
	CharacterCount int
	Success        bool
	ErrorMessage   string
}

// SavePaste records a delivery and fills in its ID.
func (db *DB) SavePaste(p *Paste) error {
	query := `
		INSERT INTO pastes (prompt_key, source, character_count, success, error_message)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		p.PromptKey, p.Source, p.CharacterCount, p.Success, p.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save paste: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	p.ID = id
	return nil
}

// GetPastes retrieves history newest-first with pagination.
func (db *DB) GetPastes(limit, offset int) ([]Paste, error) {
	query := `
		SELECT id, timestamp, prompt_key, source, character_count, success, error_message
		FROM pastes
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastes: %w", err)
	}
	defer rows.Close()

	var pastes []Paste
	for rows.Next() {
		var p Paste
		var errorMessage sql.NullString

		if err := rows.Scan(
			&p.ID, &p.Timestamp, &p.PromptKey, &p.Source,
			&p.CharacterCount, &p.Success, &errorMessage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paste: %w", err)
		}
		p.ErrorMessage = errorMessage.String
		pastes = append(pastes, p)
	}

	return pastes, rows.Err()
}

// GetPasteCount returns the total number of recorded deliveries.
func (db *DB) GetPasteCount() (int, error) {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM pastes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pastes: %w", err)
	}
	return count, nil
}

// LastUsedKey returns the prompt key of the most recent successful delivery,
// or "" when there is none.
func (db *DB) LastUsedKey() (string, error) {
	var key string
	err := db.conn.QueryRow(`
		SELECT prompt_key FROM pastes
		WHERE success = 1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`).Scan(&key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last used key: %w", err)
	}
	return key, nil
}

// DeletePaste removes a single history entry.
func (db *DB) DeletePaste(id int64) error {
	if _, err := db.conn.Exec("DELETE FROM pastes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete paste: %w", err)
	}
	return nil
}
