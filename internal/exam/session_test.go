package exam

import (
	"testing"
	"time"

	"kidexam/internal/model"
)

// fakeClock advances only when told to, making durations exact.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 12, 2, 15, 14, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sessionFixture() []model.FlatQuestion {
	return []model.FlatQuestion{
		{
			SetName: "English", SetID: "9", SectionID: "A", SectionText: "Fill in",
			ID: "A.1", Question: "q1",
			Options: []model.QuestionOption{
				{Text: "Go", Score: 2}, {Text: "Help", Score: 0},
				{Text: "Take", Score: 0}, {Text: "Wake", Score: 0},
			},
		},
		{
			SetName: "English", SetID: "9", SectionID: "A", SectionText: "Fill in",
			ID: "A.2", Question: "q2",
			Options: []model.QuestionOption{
				{Text: "Get", Score: 2}, {Text: "Sit", Score: 0},
			},
		},
		{
			SetName: "English", SetID: "9", SectionID: "B", SectionText: "Choose",
			ID: "B.1", Question: "q3",
			Options: []model.QuestionOption{
				{Text: "Sun", Score: 2}, {Text: "Man", Score: -1},
			},
		},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return newSessionAt(sessionFixture(), "kid-1", clock.now), clock
}

func TestToggleOption(t *testing.T) {
	s, _ := newTestSession(t)

	if s.IsSelected("Go") {
		t.Fatal("nothing should be selected initially")
	}
	s.ToggleOption("Go")
	if !s.IsSelected("Go") {
		t.Fatal("expected Go selected after toggle")
	}
	s.ToggleOption("Go")
	if s.IsSelected("Go") {
		t.Fatal("expected Go deselected after double toggle")
	}

	s.ToggleOption("Go")
	s.ToggleOption("Help")
	if s.SelectionCount() != 2 {
		t.Fatalf("expected 2 selections, got %d", s.SelectionCount())
	}

	// Selections are per question.
	s.Next()
	if s.SelectionCount() != 0 {
		t.Fatalf("expected fresh selection set on next question, got %d", s.SelectionCount())
	}
	s.Prev()
	if s.SelectionCount() != 2 {
		t.Fatalf("expected selections preserved on revisit, got %d", s.SelectionCount())
	}
}

func TestNavigationBoundaries(t *testing.T) {
	s, _ := newTestSession(t)

	if !s.AtFirst() {
		t.Fatal("expected to start at first question")
	}
	s.Prev()
	if s.Index() != 0 {
		t.Fatalf("prev at first question moved to %d", s.Index())
	}

	s.Next()
	s.Next()
	if !s.AtLast() {
		t.Fatalf("expected to be at last question, index %d", s.Index())
	}
	s.Next()
	if s.Index() != 2 {
		t.Fatalf("next at last question moved to %d", s.Index())
	}
}

func TestSkip(t *testing.T) {
	s, _ := newTestSession(t)

	s.Skip()
	if s.Index() != 1 {
		t.Fatalf("skip should advance, index %d", s.Index())
	}
	if pending, _ := s.PendingFinish(); pending {
		t.Fatal("skip before the last question must not request finish")
	}

	s.Skip()
	s.Skip()
	pending, msg := s.PendingFinish()
	if !pending {
		t.Fatal("skip at the last question must request finish")
	}
	if msg != SkipLastMessage {
		t.Errorf("unexpected confirmation message %q", msg)
	}
	if s.Index() != 2 {
		t.Errorf("skip at the last question must not advance, index %d", s.Index())
	}
}

func TestDurationsAccumulateAcrossRevisits(t *testing.T) {
	s, clock := newTestSession(t)

	clock.advance(3 * time.Second)
	s.Next() // banks 3s on A.1

	clock.advance(2 * time.Second)
	s.Prev() // banks 2s on A.2, back at A.1

	clock.advance(1 * time.Second)
	s.Next() // banks another 1s on A.1
	s.Next()

	clock.advance(4 * time.Second)
	s.RequestFinish()
	result := s.ConfirmFinish(true)
	if result == nil {
		t.Fatal("expected a result")
	}

	wantDurations := map[model.Ident]int64{"A.1": 4000, "A.2": 2000, "B.1": 4000}
	for _, ans := range result.Answers {
		if got := ans.Duration; got != wantDurations[ans.QuestionID] {
			t.Errorf("question %s: duration %d, want %d", ans.QuestionID, got, wantDurations[ans.QuestionID])
		}
	}
}

func TestConfirmFinishDeclined(t *testing.T) {
	s, clock := newTestSession(t)

	s.ToggleOption("Go")
	s.Next()
	clock.advance(time.Second)

	msg := s.RequestFinish()
	if msg != FinishMessage {
		t.Errorf("unexpected confirmation message %q", msg)
	}

	if res := s.ConfirmFinish(false); res != nil {
		t.Fatal("declining must not produce a result")
	}
	if pending, _ := s.PendingFinish(); pending {
		t.Fatal("declining must clear the pending confirmation")
	}
	if s.Finished() {
		t.Fatal("declining must not finish the session")
	}
	if s.Index() != 1 {
		t.Errorf("declining must not move the pointer, index %d", s.Index())
	}
	s.Prev()
	if !s.IsSelected("Go") {
		t.Error("declining must not clear selections")
	}
}

func TestFinishBuildsResult(t *testing.T) {
	s, clock := newTestSession(t)

	s.ToggleOption("Go") // A.1 fully correct
	clock.advance(2 * time.Second)
	s.Next()

	// A.2 skipped entirely.
	clock.advance(time.Second)
	s.Next()

	s.ToggleOption("Sun")
	s.ToggleOption("Man") // B.1 correct plus penalized
	clock.advance(3 * time.Second)

	s.RequestFinish()
	result := s.ConfirmFinish(true)
	if result == nil {
		t.Fatal("expected a result")
	}
	if !s.Finished() {
		t.Fatal("expected session to be finished")
	}

	if result.QuestionSetID != "9" {
		t.Errorf("question_set_id: got %q", result.QuestionSetID)
	}
	if result.KidID != "kid-1" {
		t.Errorf("kid_id: got %q", result.KidID)
	}
	if len(result.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(result.Answers))
	}

	a1, a2, b1 := result.Answers[0], result.Answers[1], result.Answers[2]
	if !a1.IsCorrect || a1.Score != 2 {
		t.Errorf("A.1: %+v", a1)
	}
	if a2.IsCorrect || a2.Score != 0 || len(a2.CorrectUnselected) != 1 {
		t.Errorf("A.2: %+v", a2)
	}
	if b1.IsCorrect || b1.Score != 1 {
		t.Errorf("B.1: %+v", b1)
	}

	if result.Score != 3 {
		t.Errorf("total score: got %v, want 3", result.Score)
	}
	if got := result.AttemptEnd - result.AttemptStart; got != 6000 {
		t.Errorf("attempt wall time: got %dms, want 6000", got)
	}

	// Terminal state: further transitions are no-ops.
	s.ToggleOption("Sun")
	s.Prev()
	if s.Index() != 2 {
		t.Error("finished session must ignore navigation")
	}
	if again := s.ConfirmFinish(true); again != result {
		t.Error("repeated confirm must return the same result")
	}
}

func TestEmptySession(t *testing.T) {
	clock := newFakeClock()
	s := newSessionAt(nil, "", clock.now)

	if s.Current() != nil {
		t.Fatal("expected no current question")
	}
	s.ToggleOption("Go") // no-op
	s.Next()
	s.Prev()

	s.RequestFinish()
	result := s.ConfirmFinish(true)
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.QuestionSetID != "" {
		t.Errorf("expected empty question_set_id, got %q", result.QuestionSetID)
	}
	if len(result.Answers) != 0 {
		t.Errorf("expected no answers, got %d", len(result.Answers))
	}
	if result.Score != 0 {
		t.Errorf("expected zero score, got %v", result.Score)
	}
}
