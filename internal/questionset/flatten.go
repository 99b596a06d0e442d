package questionset

import "kidexam/internal/model"

// Flatten converts the nested set/section/question tree into one ordered
// list of questions with lineage, via depth-first traversal. Sets and
// sections with absent child arrays contribute nothing. The resulting
// order is the navigation order and the final answer-list order; any
// reshuffle of the sets invalidates it and requires re-flattening.
func Flatten(sets []model.QuestionSet) []model.FlatQuestion {
	var all []model.FlatQuestion
	for _, set := range sets {
		name := set.Name
		if name == "" {
			name = set.ID.String()
		}
		for _, section := range set.Sections {
			for _, q := range section.Questions {
				all = append(all, model.FlatQuestion{
					SetName:     name,
					SetID:       set.ID,
					SectionID:   section.ID,
					SectionText: section.Text,
					ID:          q.ID,
					Question:    q.Question,
					Options:     q.Options,
				})
			}
		}
	}
	return all
}
