// Package questionset parses, normalizes, shuffles, and flattens authored
// question-set JSON into the linear form the exam runner navigates.
package questionset

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"kidexam/internal/model"
)

// ParseError reports authored JSON that could not be understood, even after
// the one permitted repair.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid question-set JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoQuestionSets means the input parsed cleanly but contained no
// question sets. Callers that need at least one set treat this as a
// validation failure, not a crash.
var ErrNoQuestionSets = errors.New("no question_sets found")

// Hand-typed exams often omit the quotes on the leading question_sets key.
// Exactly one repair of that form is attempted before giving up.
var bareSetsKey = regexp.MustCompile(`(^\s*\{)\s*question_sets\s*:`)

// inputShape names the recognized top-level JSON forms.
type inputShape int

const (
	shapeNull    inputShape = iota // null or absent: zero sets
	shapeArray                     // [set, set, ...]
	shapeWrapped                   // {"question_sets": [...]}
	shapeBare                      // a single set object
)

// rawInput is the decode target for shape detection.
type rawInput struct {
	shape   inputShape
	array   []model.QuestionSet
	wrapped struct {
		QuestionSets []model.QuestionSet `json:"question_sets"`
	}
	bare model.QuestionSet
}

// Parse decodes authored JSON into an ordered question-set list. It accepts
// a single set object, an array of sets, or a {"question_sets": [...]}
// wrapper. An empty result is valid and means "nothing to grade".
func Parse(raw string) ([]model.QuestionSet, error) {
	trimmed := strings.TrimSpace(raw)

	in, err := decode(trimmed)
	if err != nil {
		repaired := bareSetsKey.ReplaceAllString(trimmed, `$1"question_sets":`)
		in, err = decode(repaired)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
	}

	switch in.shape {
	case shapeArray:
		return in.array, nil
	case shapeWrapped:
		return in.wrapped.QuestionSets, nil
	case shapeBare:
		return []model.QuestionSet{in.bare}, nil
	default:
		return nil, nil
	}
}

func decode(s string) (rawInput, error) {
	var in rawInput

	var probe json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return in, err
	}
	head := firstByte(probe)

	switch head {
	case '[':
		if err := json.Unmarshal(probe, &in.array); err != nil {
			return in, err
		}
		in.shape = shapeArray
	case '{':
		// Distinguish the wrapper form from a bare set by key presence,
		// not by field values.
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(probe, &keys); err != nil {
			return in, err
		}
		if wrapped, ok := keys["question_sets"]; ok && firstByte(wrapped) == '[' {
			if err := json.Unmarshal(probe, &in.wrapped); err != nil {
				return in, err
			}
			in.shape = shapeWrapped
			return in, nil
		}
		if len(keys) == 0 {
			in.shape = shapeNull
			return in, nil
		}
		if err := json.Unmarshal(probe, &in.bare); err != nil {
			return in, err
		}
		in.shape = shapeBare
	default:
		// null, a number, a string: valid JSON with nothing recognizable
		// as a set. Not an error, just nothing to grade.
		in.shape = shapeNull
	}
	return in, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
