package exam

import (
	"time"

	"kidexam/internal/model"
)

// Confirmation messages shown before ending an attempt.
const (
	FinishMessage   = "End the exam?"
	SkipLastMessage = "Skip the final question and end the exam?"
)

// Session is the execution state machine for one attempt. It owns the
// flattened question list, the current question pointer, per-question
// selections and accumulated durations. One session exists at a time;
// all transitions happen on discrete user events.
//
// Finishing is an explicit suspend point: RequestFinish parks the session
// until ConfirmFinish delivers the dialog's answer. Declining leaves the
// session exactly as it was.
type Session struct {
	questions []model.FlatQuestion
	index     int
	// selections and durations are keyed by question id.
	selections map[model.Ident]map[string]bool
	durations  map[model.Ident]int64

	kidID         string
	attemptStart  time.Time
	questionStart time.Time

	pendingFinish  bool
	pendingMessage string
	finished       bool
	result         *model.AttemptResult

	now func() time.Time
}

// NewSession starts an attempt at the first question with an empty
// selection map and the first question's timer running.
func NewSession(questions []model.FlatQuestion, kidID string) *Session {
	return newSessionAt(questions, kidID, time.Now)
}

func newSessionAt(questions []model.FlatQuestion, kidID string, now func() time.Time) *Session {
	s := &Session{
		questions:  questions,
		selections: make(map[model.Ident]map[string]bool),
		durations:  make(map[model.Ident]int64),
		kidID:      kidID,
		now:        now,
	}
	s.attemptStart = now()
	s.questionStart = s.attemptStart
	return s
}

// Questions returns the flattened navigation order.
func (s *Session) Questions() []model.FlatQuestion { return s.questions }

// Index returns the current question pointer.
func (s *Session) Index() int { return s.index }

// Current returns the question at the pointer, or nil for an empty session.
func (s *Session) Current() *model.FlatQuestion {
	if len(s.questions) == 0 {
		return nil
	}
	return &s.questions[s.index]
}

// AtFirst reports whether the pointer is at the first question.
func (s *Session) AtFirst() bool { return s.index <= 0 }

// AtLast reports whether the pointer is at the last question.
func (s *Session) AtLast() bool { return s.index >= len(s.questions)-1 }

// Finished reports whether the attempt has ended.
func (s *Session) Finished() bool { return s.finished }

// Result returns the attempt result once finished, else nil.
func (s *Session) Result() *model.AttemptResult { return s.result }

// IsSelected reports whether the current question has the option text
// selected.
func (s *Session) IsSelected(optionText string) bool {
	q := s.Current()
	if q == nil {
		return false
	}
	return s.selections[q.ID][optionText]
}

// SelectionCount returns how many options are selected on the current
// question.
func (s *Session) SelectionCount() int {
	q := s.Current()
	if q == nil {
		return 0
	}
	return len(s.selections[q.ID])
}

// ToggleOption adds the option text to the current question's selection
// set, or removes it if present. No-op with no current question.
func (s *Session) ToggleOption(optionText string) {
	q := s.Current()
	if q == nil || s.finished {
		return
	}
	set := s.selections[q.ID]
	if set == nil {
		set = make(map[string]bool)
		s.selections[q.ID] = set
	}
	if set[optionText] {
		delete(set, optionText)
	} else {
		set[optionText] = true
	}
}

// Prev moves to the previous question, banking the elapsed time on the one
// being left. No-op at the first question.
func (s *Session) Prev() {
	if s.AtFirst() || s.finished {
		return
	}
	s.recordCurrentDuration()
	s.index--
	s.questionStart = s.now()
}

// Next moves to the next question, banking the elapsed time on the one
// being left. No-op at the last question.
func (s *Session) Next() {
	if s.AtLast() || s.finished {
		return
	}
	s.recordCurrentDuration()
	s.index++
	s.questionStart = s.now()
}

// Skip declines to answer and advances. At the last question it instead
// requests the finish confirmation.
func (s *Session) Skip() {
	if s.finished {
		return
	}
	if s.AtLast() {
		s.recordCurrentDuration()
		s.questionStart = s.now()
		s.pendingFinish = true
		s.pendingMessage = SkipLastMessage
		return
	}
	s.Next()
}

// RequestFinish suspends the session pending confirmation and returns the
// message to put to the user.
func (s *Session) RequestFinish() string {
	if s.finished {
		return ""
	}
	s.pendingFinish = true
	s.pendingMessage = FinishMessage
	return s.pendingMessage
}

// PendingFinish reports whether a finish confirmation is outstanding, with
// its message.
func (s *Session) PendingFinish() (bool, string) {
	return s.pendingFinish, s.pendingMessage
}

// ConfirmFinish delivers the dialog's answer. Declining clears the suspend
// point and leaves every other piece of state untouched. Accepting banks
// the current question's duration, builds the attempt result, and moves
// the session to its terminal state. Returns the result when finished.
func (s *Session) ConfirmFinish(accept bool) *model.AttemptResult {
	if s.finished || !s.pendingFinish {
		return s.result
	}
	s.pendingFinish = false
	s.pendingMessage = ""
	if !accept {
		return nil
	}
	s.recordCurrentDuration()
	s.questionStart = s.now()
	result := s.buildResult()
	s.result = &result
	s.finished = true
	return s.result
}

func (s *Session) recordCurrentDuration() {
	q := s.Current()
	if q == nil {
		return
	}
	elapsed := s.now().Sub(s.questionStart).Milliseconds()
	s.durations[q.ID] += elapsed
}

func (s *Session) buildResult() model.AttemptResult {
	answers := make([]model.AnswerResult, 0, len(s.questions))
	var total float64
	for _, q := range s.questions {
		ans := Score(q.ID, q.Options, s.selections[q.ID], s.durations[q.ID])
		total += ans.Score
		answers = append(answers, ans)
	}

	var setID model.Ident
	if len(s.questions) > 0 {
		setID = s.questions[0].SetID
	}

	return model.AttemptResult{
		QuestionSetID: setID,
		KidID:         s.kidID,
		AttemptStart:  s.attemptStart.UnixMilli(),
		AttemptEnd:    s.now().UnixMilli(),
		Score:         total,
		Answers:       answers,
	}
}
