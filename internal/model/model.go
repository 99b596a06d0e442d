package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Ident is a question-set/section/question identifier. Authored JSON uses
// strings and numbers interchangeably ("id": 9 vs "id": "A.1"), so both
// decode into the same type.
type Ident string

func (id *Ident) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty identifier")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Ident(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = Ident(n.String())
	return nil
}

func (id Ident) String() string { return string(id) }

// QuestionOption is one selectable answer. Score may be positive (correct),
// zero (neutral wrong), or negative (penalized wrong choice).
type QuestionOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Question is a single multi-select question.
type Question struct {
	ID       Ident            `json:"id"`
	Question string           `json:"question"`
	Options  []QuestionOption `json:"options,omitempty"`
}

// Section groups questions under a heading.
type Section struct {
	ID        Ident      `json:"id"`
	Text      string     `json:"text"`
	Questions []Question `json:"questions,omitempty"`
}

// QuestionSet is the root authoring unit: one exam instance.
type QuestionSet struct {
	ID              Ident     `json:"id"`
	Name            string    `json:"name"`
	Active          bool      `json:"active,omitempty"`
	TemplateID      Ident     `json:"question_set_template_id,omitempty"`
	TemplateVersion int64     `json:"question_set_template_version,omitempty"`
	MaxScore        float64   `json:"max_score,omitempty"`
	Sections        []Section `json:"sections,omitempty"`
}

// FlatQuestion is one leaf question with its lineage, produced by
// flattening a question-set list for navigation. Not persisted.
type FlatQuestion struct {
	SetName     string
	SetID       Ident
	SectionID   Ident
	SectionText string
	ID          Ident
	Question    string
	Options     []QuestionOption
}

// AnswerResult is the scored outcome of one question. Indices reference the
// question's (already shuffled) option array at scoring time.
type AnswerResult struct {
	QuestionID        Ident   `json:"question_id"`
	CorrectSelected   []int   `json:"correct_selected"`
	CorrectUnselected []int   `json:"correct_unselected"`
	IncorrectSelected []int   `json:"incorrect_selected"`
	Duration          int64   `json:"duration"`
	Score             float64 `json:"score"`
	IsCorrect         bool    `json:"is_correct"`
}

// AttemptResult is one completed run through a question set.
// Timestamps are Unix milliseconds.
type AttemptResult struct {
	QuestionSetID Ident          `json:"question_set_id"`
	KidID         string         `json:"kid_id,omitempty"`
	AttemptStart  int64          `json:"attempt_start"`
	AttemptEnd    int64          `json:"attempt_end"`
	Score         float64        `json:"score"`
	Answers       []AnswerResult `json:"answers"`
}

// Kid is one child record.
type Kid struct {
	KidID      string `json:"kidId"`
	Nickname   string `json:"nickname"`
	BirthYear  int    `json:"birthYear"`
	BirthMonth int    `json:"birthMonth"`
	Disabled   bool   `json:"disabled"`
	Rev        int64  `json:"rev"`
}

// Age returns the kid's age in whole years at the given time.
func (k Kid) Age(now time.Time) int {
	years := now.Year() - k.BirthYear
	if int(now.Month()) < k.BirthMonth {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// LLMSettings holds the OpenAI-compatible endpoint configuration.
type LLMSettings struct {
	LLMURL string `json:"llmUrl"`
	APIKey string `json:"apiKey"`
	Rev    int64  `json:"rev"`
}

// SetTemplate is a reusable prompt for generating question sets.
// The prompt text may contain an {AGE} placeholder.
type SetTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
	Prompt  string `json:"prompt"`
	Active  bool   `json:"active"`
}

// AuthSession is a logged-in parent session.
type AuthSession struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// StoredAttempt is a persisted attempt row.
type StoredAttempt struct {
	ID        int64         `json:"id"`
	KidID     string        `json:"kid_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Result    AttemptResult `json:"result"`
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	BasePath      string // URL prefix for sub-path deployments
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
	LLMModel      string // Model name for question-set generation
}

// FormatScore renders a score without trailing zeros ("2", "1.5", "-1").
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
