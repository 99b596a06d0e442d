package exam

import (
	"testing"

	"kidexam/internal/model"
)

func TestFilterAnswers(t *testing.T) {
	fullyCorrect := model.AnswerResult{
		QuestionID:      "A.1",
		CorrectSelected: []int{0},
		Score:           2,
		IsCorrect:       true,
	}
	missedPositive := model.AnswerResult{
		QuestionID:        "A.2",
		CorrectSelected:   []int{1},
		CorrectUnselected: []int{0},
		Score:             1,
	}
	wrongPick := model.AnswerResult{
		QuestionID:        "B.1",
		CorrectSelected:   []int{0},
		IncorrectSelected: []int{2},
		Score:             2,
	}
	unanswered := model.AnswerResult{
		QuestionID:        "B.2",
		CorrectUnselected: []int{0},
	}
	answers := []model.AnswerResult{fullyCorrect, missedPositive, wrongPick, unanswered}

	ids := func(in []model.AnswerResult) []model.Ident {
		out := make([]model.Ident, len(in))
		for i, a := range in {
			out[i] = a.QuestionID
		}
		return out
	}

	tests := []struct {
		view FilterView
		want []model.Ident
	}{
		{FilterAll, []model.Ident{"A.1", "A.2", "B.1", "B.2"}},
		{FilterCorrect, []model.Ident{"A.1"}},
		{FilterIncorrect, []model.Ident{"A.2", "B.1", "B.2"}},
		{FilterSkipped, []model.Ident{"B.2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got := ids(FilterAnswers(answers, tt.view))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// An unanswered question with a missed positive option shows up under both
// incorrect and skipped. The views are per-toggle, not a partition.
func TestFilterViewsOverlap(t *testing.T) {
	skippedWithPositive := model.AnswerResult{
		QuestionID:        "Q",
		CorrectUnselected: []int{0},
	}
	answers := []model.AnswerResult{skippedWithPositive}

	if got := FilterAnswers(answers, FilterIncorrect); len(got) != 1 {
		t.Error("expected the answer under incorrect")
	}
	if got := FilterAnswers(answers, FilterSkipped); len(got) != 1 {
		t.Error("expected the answer under skipped")
	}
	if got := FilterAnswers(answers, FilterCorrect); len(got) != 0 {
		t.Error("did not expect the answer under correct")
	}
}

func TestValidFilter(t *testing.T) {
	for _, v := range []FilterView{FilterAll, FilterCorrect, FilterIncorrect, FilterSkipped} {
		if !ValidFilter(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	if ValidFilter("wrong") {
		t.Error("expected unknown view to be invalid")
	}
}
