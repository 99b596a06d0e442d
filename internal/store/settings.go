package store

import (
	"database/sql"

	"kidexam/internal/model"
)

// GetLLMSettings returns the stored LLM connection, or nil when never saved.
func (s *Store) GetLLMSettings() (*model.LLMSettings, error) {
	var cfg model.LLMSettings
	err := s.db.QueryRow(
		`SELECT llm_url, api_key, rev FROM settings_llm WHERE id = 1`,
	).Scan(&cfg.LLMURL, &cfg.APIKey, &cfg.Rev)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveLLMSettings inserts or replaces the LLM connection settings.
func (s *Store) SaveLLMSettings(llmURL, apiKey string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings_llm (id, llm_url, api_key) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET llm_url = ?, api_key = ?, rev = rev + 1`,
		llmURL, apiKey, llmURL, apiKey,
	)
	return err
}

// ListTemplates returns all question-set templates ordered by id.
func (s *Store) ListTemplates() ([]model.SetTemplate, error) {
	rows, err := s.db.Query(
		`SELECT id, name, version, prompt, active FROM set_templates ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var templates []model.SetTemplate
	for rows.Next() {
		var tpl model.SetTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Version, &tpl.Prompt, &tpl.Active); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// GetTemplate returns a template by id, or ErrNotFound.
func (s *Store) GetTemplate(id string) (model.SetTemplate, error) {
	var tpl model.SetTemplate
	err := s.db.QueryRow(
		`SELECT id, name, version, prompt, active FROM set_templates WHERE id = ?`, id,
	).Scan(&tpl.ID, &tpl.Name, &tpl.Version, &tpl.Prompt, &tpl.Active)
	if err == sql.ErrNoRows {
		return tpl, ErrNotFound
	}
	return tpl, err
}

// SeedTemplates inserts the given templates if the table is empty.
func (s *Store) SeedTemplates(templates []model.SetTemplate) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM set_templates`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, tpl := range templates {
		_, err := s.db.Exec(
			`INSERT INTO set_templates (id, name, version, prompt, active) VALUES (?, ?, ?, ?, ?)`,
			tpl.ID, tpl.Name, tpl.Version, tpl.Prompt, tpl.Active,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
