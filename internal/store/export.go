package store

import (
	"fmt"

	"kidexam/internal/model"
)

// Export wrappers tag each document with its table name, matching the
// shape of the browser app's database dump this store replaced.
type exportKid struct {
	Table string `json:"table"`
	model.Kid
}

type exportSettings struct {
	Table string `json:"table"`
	model.LLMSettings
}

type exportTemplate struct {
	Table string `json:"table"`
	model.SetTemplate
}

type exportAttempt struct {
	Table string `json:"table"`
	model.StoredAttempt
}

// ExportAll collects every stored document as one flat list, ready to be
// marshaled into a downloadable JSON array. Credentials are deliberately
// excluded from the dump.
func (s *Store) ExportAll() ([]any, error) {
	var docs []any

	kids, err := s.ListKids()
	if err != nil {
		return nil, fmt.Errorf("list kids: %w", err)
	}
	for _, k := range kids {
		docs = append(docs, exportKid{Table: "kids", Kid: k})
	}

	settings, err := s.GetLLMSettings()
	if err != nil {
		return nil, fmt.Errorf("get llm settings: %w", err)
	}
	if settings != nil {
		docs = append(docs, exportSettings{Table: "settings_llm", LLMSettings: *settings})
	}

	templates, err := s.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for _, tpl := range templates {
		docs = append(docs, exportTemplate{Table: "question_set_templates", SetTemplate: tpl})
	}

	attempts, err := s.ListAttempts()
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	for _, att := range attempts {
		docs = append(docs, exportAttempt{Table: "attempts", StoredAttempt: att})
	}

	return docs, nil
}
