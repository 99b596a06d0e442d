package questionset

import (
	"errors"
	"testing"

	"kidexam/internal/model"
)

const setA = `{
  "id": 9,
  "name": "P1_Term1_English_202512021514",
  "active": true,
  "question_set_template_id": "5",
  "question_set_template_version": 202512011515,
  "max_score": 20,
  "sections": [
    {
      "id": "A",
      "text": "Fill in the blanks",
      "questions": [
        {
          "id": "A.1",
          "question": "___ to bed early every night.",
          "options": [
            {"text": "Go", "score": 2},
            {"text": "Help", "score": 0},
            {"text": "Take", "score": 0},
            {"text": "Wake", "score": 0}
          ]
        }
      ]
    }
  ]
}`

const setB = `{"id": "10", "name": "P2_Term1_Math", "sections": []}`

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFirst model.Ident
	}{
		{"bare object", setA, 1, "9"},
		{"array", "[" + setA + "," + setB + "]", 2, "9"},
		{"wrapped object", `{"question_sets": [` + setA + "," + setB + `]}`, 2, "9"},
		{"wrapped preserves order", `{"question_sets": [` + setB + "," + setA + `]}`, 2, "10"},
		{"null", `null`, 0, ""},
		{"empty object", `{}`, 0, ""},
		{"empty array", `[]`, 0, ""},
		{"empty wrapper", `{"question_sets": []}`, 0, ""},
		{"bare scalar", `42`, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(sets) != tt.wantCount {
				t.Fatalf("expected %d sets, got %d", tt.wantCount, len(sets))
			}
			if tt.wantCount > 0 && sets[0].ID != tt.wantFirst {
				t.Errorf("expected first set id %q, got %q", tt.wantFirst, sets[0].ID)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	sets, err := Parse(setA)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	set := sets[0]
	if set.Name != "P1_Term1_English_202512021514" {
		t.Errorf("unexpected name %q", set.Name)
	}
	if set.TemplateID != "5" {
		t.Errorf("unexpected template id %q", set.TemplateID)
	}
	if set.TemplateVersion != 202512011515 {
		t.Errorf("unexpected template version %d", set.TemplateVersion)
	}
	if set.MaxScore != 20 {
		t.Errorf("unexpected max score %v", set.MaxScore)
	}
	if len(set.Sections) != 1 || len(set.Sections[0].Questions) != 1 {
		t.Fatalf("unexpected tree shape: %+v", set.Sections)
	}
	q := set.Sections[0].Questions[0]
	if q.ID != "A.1" || len(q.Options) != 4 {
		t.Fatalf("unexpected question: %+v", q)
	}
	if q.Options[0].Text != "Go" || q.Options[0].Score != 2 {
		t.Errorf("unexpected first option: %+v", q.Options[0])
	}
}

func TestParseBareSetsKeyRepair(t *testing.T) {
	// A hand-typed wrapper with an unquoted leading key is repaired once.
	relaxed := `{question_sets: [` + setB + `]}`
	sets, err := Parse(relaxed)
	if err != nil {
		t.Fatalf("Parse relaxed form: %v", err)
	}
	if len(sets) != 1 || sets[0].ID != "10" {
		t.Fatalf("expected one set with id 10, got %+v", sets)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `{"question_sets": [`},
		{"not json", `hello world`},
		{"unquoted key beyond repair", `{sections: []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Error() == "" {
				t.Error("expected a human-readable message")
			}
		})
	}
}
