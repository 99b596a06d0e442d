package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"kidexam/internal/exam"
	appI18n "kidexam/internal/i18n"
)

// ExamPage renders the current question of a running attempt, or the
// finish-confirmation dialog while one is pending.
func ExamPage(s *exam.Session) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if pending, msg := s.PendingFinish(); pending {
			return confirmDialog(msg).Render(ctx, w)
		}

		q := s.Current()
		if q == nil {
			return nil
		}

		counter := appI18n.Td(ctx, "ExamQuestionOf", map[string]any{
			"Number": s.Index() + 1,
			"Total":  len(s.Questions()),
		})
		if _, err := fmt.Fprintf(w, `<p class="counter">%s</p>`, esc(counter)); err != nil {
			return err
		}
		if q.SectionText != "" {
			if _, err := fmt.Fprintf(w, `<h2>%s</h2>`, esc(q.SectionText)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p class="question">%s</p>`, esc(q.Question)); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="%s"><ul class="options">`, esc(href(ctx, "/exam/toggle"))); err != nil {
			return err
		}
		for _, opt := range q.Options {
			mark, class := "&#9744;", "option"
			if s.IsSelected(opt.Text) {
				mark, class = "&#9745;", "option selected"
			}
			if _, err := fmt.Fprintf(w, `<li><button type="submit" name="option" value="%s" class="%s">%s %s</button></li>`,
				esc(opt.Text), class, mark, esc(opt.Text)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul></form>"); err != nil {
			return err
		}

		nav := []struct {
			action   string
			msgID    string
			disabled bool
		}{
			{"/exam/prev", "ExamPrev", s.AtFirst()},
			{"/exam/skip", "ExamSkip", false},
			{"/exam/next", "ExamNext", s.AtLast()},
			{"/exam/finish", "ExamFinish", false},
		}
		if _, err := io.WriteString(w, `<div class="nav">`); err != nil {
			return err
		}
		for _, b := range nav {
			attr := ""
			if b.disabled {
				attr = " disabled"
			}
			if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="inline"><button type="submit"%s>%s</button></form>`,
				esc(href(ctx, b.action)), attr, esc(appI18n.T(ctx, b.msgID))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "ExamTitle"), false, body).Render(ctx, w)
	})
}

func confirmDialog(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="confirm">
<p>%s</p>
<form method="post" action="%s" class="inline"><button type="submit" name="accept" value="yes">%s</button></form>
<form method="post" action="%s" class="inline"><button type="submit" name="accept" value="no">%s</button></form>
</div>`,
			esc(message),
			esc(href(ctx, "/exam/confirm")), esc(appI18n.T(ctx, "ExamConfirmYes")),
			esc(href(ctx, "/exam/confirm")), esc(appI18n.T(ctx, "ExamConfirmNo")))
		return err
	})
}
