package questionset

import (
	"reflect"
	"sort"
	"testing"

	"kidexam/internal/model"
)

func optionList(texts ...string) []model.QuestionOption {
	opts := make([]model.QuestionOption, len(texts))
	for i, text := range texts {
		score := 0.0
		if i == 0 {
			score = 2
		}
		opts[i] = model.QuestionOption{Text: text, Score: score}
	}
	return opts
}

func shuffleFixture() []model.QuestionSet {
	return []model.QuestionSet{
		{
			ID:   "9",
			Name: "English",
			Sections: []model.Section{
				{
					ID:   "A",
					Text: "Fill in the blanks",
					Questions: []model.Question{
						{ID: "A.1", Question: "q1", Options: optionList("Go", "Help", "Take", "Wake")},
						{ID: "A.2", Question: "q2", Options: optionList("Get", "Sit", "Put", "Cut")},
					},
				},
				{
					ID:   "B",
					Text: "Choose the word",
					Questions: []model.Question{
						{ID: "B.1", Question: "q3", Options: optionList("Cat", "Hat", "Mat", "Bag")},
					},
				},
			},
		},
	}
}

func TestShuffleSetsDeterministic(t *testing.T) {
	input := shuffleFixture()

	first := ShuffleSets(input)
	second := ShuffleSets(input)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over the same input diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestShuffleSetsIsPermutation(t *testing.T) {
	input := shuffleFixture()
	shuffled := ShuffleSets(input)

	for si, section := range shuffled[0].Sections {
		for qi, q := range section.Questions {
			orig := input[0].Sections[si].Questions[qi].Options
			if len(q.Options) != len(orig) {
				t.Fatalf("question %s: option count changed", q.ID)
			}
			if !samePairs(orig, q.Options) {
				t.Errorf("question %s: option multiset changed\nbefore: %+v\nafter:  %+v", q.ID, orig, q.Options)
			}
		}
	}
}

func TestShuffleSetsDoesNotMutateInput(t *testing.T) {
	input := shuffleFixture()
	want := shuffleFixture()

	_ = ShuffleSets(input)

	if !reflect.DeepEqual(input, want) {
		t.Fatal("input was mutated by ShuffleSets")
	}
}

func TestShuffleSetsNilChildren(t *testing.T) {
	sets := []model.QuestionSet{
		{ID: "1", Name: "empty"},
		{ID: "2", Name: "section only", Sections: []model.Section{{ID: "A"}}},
		{ID: "3", Name: "question only", Sections: []model.Section{
			{ID: "A", Questions: []model.Question{{ID: "A.1", Question: "no options"}}},
		}},
	}

	out := ShuffleSets(sets)
	if len(out) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(out))
	}
	if out[0].Sections != nil {
		t.Error("expected nil sections to stay nil")
	}
	if out[2].Sections[0].Questions[0].Options != nil {
		t.Error("expected nil options to stay nil")
	}
}

func TestLCGSequence(t *testing.T) {
	// First draws of the fixed-constant generator.
	g := newLCG()
	want := []int64{(lcgSeed*lcgMultiplier + lcgIncrement) % lcgModulus}
	want = append(want, (want[0]*lcgMultiplier+lcgIncrement)%lcgModulus)

	for i, w := range want {
		got := g.next()
		expected := float64(w) / lcgModulus
		if got != expected {
			t.Fatalf("draw %d: got %v, want %v", i, got, expected)
		}
		if got < 0 || got >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, got)
		}
	}
}

func TestPreviewShuffleIsPermutation(t *testing.T) {
	input := shuffleFixture()
	out := PreviewShuffle(input)

	for si, section := range out[0].Sections {
		for qi, q := range section.Questions {
			orig := input[0].Sections[si].Questions[qi].Options
			if !samePairs(orig, q.Options) {
				t.Errorf("question %s: option multiset changed", q.ID)
			}
		}
	}
}

func samePairs(a, b []model.QuestionOption) bool {
	as := make([]model.QuestionOption, len(a))
	bs := make([]model.QuestionOption, len(b))
	copy(as, a)
	copy(bs, b)
	less := func(opts []model.QuestionOption) func(i, j int) bool {
		return func(i, j int) bool {
			if opts[i].Text != opts[j].Text {
				return opts[i].Text < opts[j].Text
			}
			return opts[i].Score < opts[j].Score
		}
	}
	sort.Slice(as, less(as))
	sort.Slice(bs, less(bs))
	return reflect.DeepEqual(as, bs)
}
