package questionset

import (
	"math/rand"

	"kidexam/internal/model"
)

// LCG parameters for the submission-time shuffle. The generator is
// re-seeded with the same constants on every call, so the same input
// ordering always produces the same permutation: preview and execute
// display options in identical order for one submission.
const (
	lcgSeed       = 1234567
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

type lcg struct {
	seed int64
}

func newLCG() *lcg { return &lcg{seed: lcgSeed} }

// next returns a pseudo-random float in [0, 1).
func (g *lcg) next() float64 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.seed) / lcgModulus
}

// ShuffleSets returns a copy of the question sets with every question's
// options permuted by one freshly seeded generator shared across the whole
// list, in depth-first traversal order. Option text/score pairing is never
// broken; the input is not mutated.
func ShuffleSets(sets []model.QuestionSet) []model.QuestionSet {
	g := newLCG()
	out := make([]model.QuestionSet, len(sets))
	for i, set := range sets {
		out[i] = set
		if set.Sections == nil {
			continue
		}
		sections := make([]model.Section, len(set.Sections))
		for j, section := range set.Sections {
			sections[j] = section
			if section.Questions == nil {
				continue
			}
			questions := make([]model.Question, len(section.Questions))
			for k, q := range section.Questions {
				questions[k] = q
				if q.Options != nil {
					questions[k].Options = shuffleOptions(q.Options, g.next)
				}
			}
			sections[j].Questions = questions
		}
		out[i].Sections = sections
	}
	return out
}

// PreviewShuffle permutes each question's options with true randomness.
// It is used only for pre-submission preview display, so answer order
// leaks nothing before the deterministic shuffle is committed. It makes
// no reproducibility promise.
func PreviewShuffle(sets []model.QuestionSet) []model.QuestionSet {
	out := make([]model.QuestionSet, len(sets))
	for i, set := range sets {
		out[i] = set
		if set.Sections == nil {
			continue
		}
		sections := make([]model.Section, len(set.Sections))
		for j, section := range set.Sections {
			sections[j] = section
			if section.Questions == nil {
				continue
			}
			questions := make([]model.Question, len(section.Questions))
			for k, q := range section.Questions {
				questions[k] = q
				if q.Options != nil {
					questions[k].Options = shuffleOptions(q.Options, rand.Float64)
				}
			}
			sections[j].Questions = questions
		}
		out[i].Sections = sections
	}
	return out
}

// shuffleOptions applies a backward Fisher-Yates pass using successive
// draws from rnd.
func shuffleOptions(options []model.QuestionOption, rnd func() float64) []model.QuestionOption {
	out := make([]model.QuestionOption, len(options))
	copy(out, options)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rnd() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
