package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	appI18n "kidexam/internal/i18n"
	"kidexam/internal/model"
)

// LoginPage renders the parent PIN prompt, with an optional error banner.
func LoginPage(errorMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := flash(w, "", errorMsg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="%s">
<label>%s <input type="password" name="pin" inputmode="numeric" autocomplete="off" autofocus></label>
<button type="submit">%s</button>
</form>`,
			esc(href(ctx, "/login")),
			esc(appI18n.T(ctx, "LoginPIN")),
			esc(appI18n.T(ctx, "LoginButton")))
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "LoginTitle"), false, body).Render(ctx, w)
	})
}

// EditorPage renders the paste-JSON form and the LLM generation form.
func EditorPage(templates []model.SetTemplate, kids []model.Kid, raw, errorMsg, info string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := flash(w, info, errorMsg); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">
<label>%s<br><textarea name="raw" rows="20" cols="80">%s</textarea></label><br>
<button type="submit">%s</button>
</form>`,
			esc(href(ctx, "/editor/load")),
			esc(appI18n.T(ctx, "EditorPaste")),
			esc(raw),
			esc(appI18n.T(ctx, "EditorLoad"))); err != nil {
			return err
		}

		if len(templates) == 0 {
			return nil
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">
<label>%s <select name="template_id">`,
			esc(href(ctx, "/editor/generate")),
			esc(appI18n.T(ctx, "EditorTemplate"))); err != nil {
			return err
		}
		for _, tpl := range templates {
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(tpl.ID), esc(tpl.Name)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</select></label>
<label>%s <select name="kid_id">`, esc(appI18n.T(ctx, "EditorKid"))); err != nil {
			return err
		}
		for _, k := range kids {
			if k.Disabled {
				continue
			}
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(k.KidID), esc(k.Nickname)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</select></label>
<button type="submit">%s</button>
</form>`, esc(appI18n.T(ctx, "EditorGenerate")))
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "EditorTitle"), true, body).Render(ctx, w)
	})
}

// PreviewPage shows the loaded sets in their shuffled order with controls
// to reshuffle or start the exam for a chosen kid.
func PreviewPage(sets []model.QuestionSet, kids []model.Kid, questionCount int) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loaded := appI18n.Td(ctx, "EditorLoaded", map[string]any{"Count": len(sets), "Questions": questionCount})
		if err := flash(w, loaded, ""); err != nil {
			return err
		}
		for _, set := range sets {
			if _, err := fmt.Fprintf(w, `<section><h2>%s</h2>`, esc(set.Name)); err != nil {
				return err
			}
			for _, sec := range set.Sections {
				if _, err := fmt.Fprintf(w, `<h3>%s</h3><ol>`, esc(sec.Text)); err != nil {
					return err
				}
				for _, q := range sec.Questions {
					if _, err := fmt.Fprintf(w, `<li>%s<ul>`, esc(q.Question)); err != nil {
						return err
					}
					for _, opt := range q.Options {
						if _, err := fmt.Fprintf(w, `<li>%s <small>(%s)</small></li>`, esc(opt.Text), esc(model.FormatScore(opt.Score))); err != nil {
							return err
						}
					}
					if _, err := io.WriteString(w, "</ul></li>"); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, "</ol>"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</section>"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="inline"><button type="submit">%s</button></form>`,
			esc(href(ctx, "/preview/shuffle")),
			esc(appI18n.T(ctx, "PreviewShuffle"))); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="inline">
<label>%s <select name="kid_id"><option value=""></option>`,
			esc(href(ctx, "/exam/start")),
			esc(appI18n.T(ctx, "EditorKid"))); err != nil {
			return err
		}
		for _, k := range kids {
			if k.Disabled {
				continue
			}
			if _, err := fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(k.KidID), esc(k.Nickname)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</select></label>
<button type="submit">%s</button>
</form>`, esc(appI18n.T(ctx, "PreviewStart")))
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "PreviewTitle"), true, body).Render(ctx, w)
	})
}
