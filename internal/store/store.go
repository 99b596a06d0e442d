// Package store persists household records in a local SQLite file: kids,
// the parent PIN, LLM settings, question-set templates, and completed
// attempts. Updates and deletes carry the caller's last-seen revision;
// a mismatch fails with ErrConflict and leaves the row untouched.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound means the addressed record does not exist (including
// update/delete of a stale id).
var ErrNotFound = errors.New("record not found")

// ErrConflict means the record changed since the caller last read it.
var ErrConflict = errors.New("record revision conflict")

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kids (
		kid_id TEXT PRIMARY KEY,
		nickname TEXT NOT NULL,
		birth_year INTEGER NOT NULL,
		birth_month INTEGER NOT NULL,
		disabled INTEGER NOT NULL DEFAULT 0,
		rev INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		pin_hash TEXT NOT NULL,
		rev INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS settings_llm (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		llm_url TEXT NOT NULL DEFAULT '',
		api_key TEXT NOT NULL DEFAULT '',
		rev INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS set_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		prompt TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kid_id TEXT NOT NULL DEFAULT '',
		question_set_id TEXT NOT NULL DEFAULT '',
		score REAL NOT NULL DEFAULT 0,
		result TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS auth_sessions (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// HasCredentials reports whether a parent PIN has been set.
func (s *Store) HasCredentials() (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count)
	return count > 0, err
}

// GetPINHash returns the stored PIN hash, or ErrNotFound.
func (s *Store) GetPINHash() (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT pin_hash FROM credentials WHERE id = 1`).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return hash, err
}

// SaveCredentials inserts or replaces the parent PIN hash.
func (s *Store) SaveCredentials(pinHash string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (id, pin_hash) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET pin_hash = ?, rev = rev + 1`,
		pinHash, pinHash,
	)
	return err
}
