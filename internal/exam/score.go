// Package exam runs one attempt over a flattened question list: navigation,
// answer bookkeeping, scoring, and result filtering for review.
package exam

import "kidexam/internal/model"

// Score grades one question. Options are the question's (already shuffled)
// option array; selected holds the chosen option texts. Matching is by
// option text because indices are unstable across display refreshes; two
// options with identical text in one question are indistinguishable.
//
// Option indices are categorized as:
//   - score > 0, selected      -> correct_selected
//   - score > 0, not selected  -> correct_unselected
//   - score <= 0, selected     -> incorrect_selected
//   - score <= 0, not selected -> ignored
//
// The numeric score is the sum of selected options' scores, so negative
// selections subtract. An answer is correct when every positive option was
// chosen and nothing else.
func Score(questionID model.Ident, options []model.QuestionOption, selected map[string]bool, duration int64) model.AnswerResult {
	correctSelected := []int{}
	correctUnselected := []int{}
	incorrectSelected := []int{}
	var total float64

	for idx, opt := range options {
		isSelected := selected[opt.Text]
		if isSelected {
			total += opt.Score
		}
		switch {
		case opt.Score > 0 && isSelected:
			correctSelected = append(correctSelected, idx)
		case opt.Score > 0:
			correctUnselected = append(correctUnselected, idx)
		case isSelected:
			incorrectSelected = append(incorrectSelected, idx)
		}
	}

	return model.AnswerResult{
		QuestionID:        questionID,
		CorrectSelected:   correctSelected,
		CorrectUnselected: correctUnselected,
		IncorrectSelected: incorrectSelected,
		Duration:          duration,
		Score:             total,
		IsCorrect:         len(correctUnselected) == 0 && len(incorrectSelected) == 0,
	}
}
