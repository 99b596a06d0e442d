package exam

import "kidexam/internal/model"

// FilterView selects one review slice of a completed attempt.
type FilterView string

const (
	FilterAll       FilterView = "all"
	FilterCorrect   FilterView = "correct"
	FilterIncorrect FilterView = "incorrect"
	FilterSkipped   FilterView = "skipped"
)

// ValidFilter reports whether v names a known view.
func ValidFilter(v FilterView) bool {
	switch v {
	case FilterAll, FilterCorrect, FilterIncorrect, FilterSkipped:
		return true
	}
	return false
}

// FilterAnswers classifies answers for one review toggle:
//
//	all:       every answer
//	correct:   something selected, nothing missed, nothing wrong
//	incorrect: anything wrong or missed
//	skipped:   nothing selected at all
//
// The views are not a strict partition: a skipped question with positive
// options missed also matches incorrect. Each toggle is evaluated on its
// own, matching how the review screen presents them.
func FilterAnswers(answers []model.AnswerResult, view FilterView) []model.AnswerResult {
	switch view {
	case FilterCorrect:
		return filter(answers, func(a model.AnswerResult) bool {
			return len(a.CorrectSelected) > 0 && len(a.CorrectUnselected) == 0 && len(a.IncorrectSelected) == 0
		})
	case FilterIncorrect:
		return filter(answers, func(a model.AnswerResult) bool {
			return len(a.IncorrectSelected) > 0 || len(a.CorrectUnselected) > 0
		})
	case FilterSkipped:
		return filter(answers, func(a model.AnswerResult) bool {
			return len(a.CorrectSelected)+len(a.IncorrectSelected) == 0
		})
	default:
		return answers
	}
}

func filter(answers []model.AnswerResult, keep func(model.AnswerResult) bool) []model.AnswerResult {
	var out []model.AnswerResult
	for _, a := range answers {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
