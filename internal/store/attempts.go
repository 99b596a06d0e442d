package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kidexam/internal/model"
)

// SaveAttempt persists a completed attempt result.
func (s *Store) SaveAttempt(result model.AttemptResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal attempt: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO attempts (kid_id, question_set_id, score, result, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		result.KidID, result.QuestionSetID.String(), result.Score, string(payload), time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetAttempt returns a stored attempt by id, or ErrNotFound.
func (s *Store) GetAttempt(id int64) (model.StoredAttempt, error) {
	var att model.StoredAttempt
	var payload string
	err := s.db.QueryRow(
		`SELECT id, kid_id, created_at, result FROM attempts WHERE id = ?`, id,
	).Scan(&att.ID, &att.KidID, &att.CreatedAt, &payload)
	if err == sql.ErrNoRows {
		return att, ErrNotFound
	}
	if err != nil {
		return att, err
	}
	if err := json.Unmarshal([]byte(payload), &att.Result); err != nil {
		return att, fmt.Errorf("unmarshal attempt %d: %w", id, err)
	}
	return att, nil
}

// ListAttempts returns all stored attempts, newest first.
func (s *Store) ListAttempts() ([]model.StoredAttempt, error) {
	rows, err := s.db.Query(`SELECT id, kid_id, created_at, result FROM attempts ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var attempts []model.StoredAttempt
	for rows.Next() {
		var att model.StoredAttempt
		var payload string
		if err := rows.Scan(&att.ID, &att.KidID, &att.CreatedAt, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &att.Result); err != nil {
			return nil, fmt.Errorf("unmarshal attempt %d: %w", att.ID, err)
		}
		attempts = append(attempts, att)
	}
	return attempts, rows.Err()
}
