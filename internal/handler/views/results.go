package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"kidexam/internal/exam"
	appI18n "kidexam/internal/i18n"
	"kidexam/internal/model"
)

// formatDuration renders milliseconds as "1m 23s" (or "45s" under a minute).
func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// ResultsPage renders a finished attempt: total score, wall time, a filter
// bar, and the answer breakdown for the selected view. Option indices in
// the answers refer to the shuffled question list passed alongside.
func ResultsPage(result model.AttemptResult, questions []model.FlatQuestion, view exam.FilterView) templ.Component {
	byID := make(map[model.Ident]model.FlatQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		score := appI18n.Td(ctx, "ResultsScore", map[string]any{"Score": model.FormatScore(result.Score)})
		dur := appI18n.Td(ctx, "ResultsDuration", map[string]any{"Duration": formatDuration(result.AttemptEnd - result.AttemptStart)})
		if _, err := fmt.Fprintf(w, `<p class="summary">%s &middot; %s</p>`, esc(score), esc(dur)); err != nil {
			return err
		}

		if err := filterBar(ctx, w, view); err != nil {
			return err
		}

		answers := exam.FilterAnswers(result.Answers, view)
		if len(answers) == 0 {
			_, err := fmt.Fprintf(w, `<p>%s</p>`, esc(appI18n.T(ctx, "ResultsEmpty")))
			return err
		}

		for _, ans := range answers {
			if err := answerCard(w, ans, byID[ans.QuestionID]); err != nil {
				return err
			}
		}
		return nil
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "ResultsTitle"), true, body).Render(ctx, w)
	})
}

func filterBar(ctx context.Context, w io.Writer, active exam.FilterView) error {
	views := []struct {
		view  exam.FilterView
		msgID string
	}{
		{exam.FilterAll, "ResultsFilterAll"},
		{exam.FilterCorrect, "ResultsFilterCorrect"},
		{exam.FilterIncorrect, "ResultsFilterIncorrect"},
		{exam.FilterSkipped, "ResultsFilterSkipped"},
	}
	if _, err := io.WriteString(w, `<nav class="filter">`); err != nil {
		return err
	}
	for _, v := range views {
		class := ""
		if v.view == active {
			class = ` class="active"`
		}
		if _, err := fmt.Fprintf(w, `<a href="%s?view=%s"%s>%s</a>`,
			esc(href(ctx, "/results")), esc(string(v.view)), class, esc(appI18n.T(ctx, v.msgID))); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</nav>")
	return err
}

func answerCard(w io.Writer, ans model.AnswerResult, q model.FlatQuestion) error {
	class := "answer incorrect"
	if ans.IsCorrect {
		class = "answer correct"
	}
	if _, err := fmt.Fprintf(w, `<article class="%s"><p class="question">%s</p><ul>`, class, esc(q.Question)); err != nil {
		return err
	}

	groups := []struct {
		indices []int
		class   string
	}{
		{ans.CorrectSelected, "correct-selected"},
		{ans.CorrectUnselected, "correct-unselected"},
		{ans.IncorrectSelected, "incorrect-selected"},
	}
	for _, g := range groups {
		for _, i := range g.indices {
			if i < 0 || i >= len(q.Options) {
				continue
			}
			if _, err := fmt.Fprintf(w, `<li class="%s">%s</li>`, g.class, esc(q.Options[i].Text)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, `</ul><p class="meta">%s &middot; %s</p></article>`,
		esc(model.FormatScore(ans.Score)), esc(formatDuration(ans.Duration)))
	return err
}

// AttemptsPage lists stored attempts, newest first.
func AttemptsPage(attempts []model.StoredAttempt, kidNames map[string]string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}
		for _, a := range attempts {
			name := kidNames[a.KidID]
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(a.CreatedAt.Format("2006-01-02 15:04")),
				esc(name),
				esc(model.FormatScore(a.Result.Score)),
				esc(formatDuration(a.Result.AttemptEnd-a.Result.AttemptStart))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "ResultsTitle"), true, body).Render(ctx, w)
	})
}
