package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	appI18n "kidexam/internal/i18n"
	"kidexam/internal/model"
)

// KidsPage renders the kid list with per-row edit forms and an add form.
func KidsPage(kids []model.Kid, info, errorMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := flash(w, info, errorMsg); err != nil {
			return err
		}
		now := time.Now()
		for _, k := range kids {
			if err := kidRow(ctx, w, k, now); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<h2>%s</h2>
<form method="post" action="%s">
<label>%s <input type="text" name="nickname" required></label>
<label>%s <input type="month" name="birthday" required></label>
<button type="submit">%s</button>
</form>`,
			esc(appI18n.T(ctx, "KidsAdd")),
			esc(href(ctx, "/kids/add")),
			esc(appI18n.T(ctx, "KidsNickname")),
			esc(appI18n.T(ctx, "KidsBirthday")),
			esc(appI18n.T(ctx, "KidsSave")))
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "KidsTitle"), true, body).Render(ctx, w)
	})
}

func kidRow(ctx context.Context, w io.Writer, k model.Kid, now time.Time) error {
	_, err := fmt.Fprintf(w, `<article class="kid">
<form method="post" action="%s" class="inline">
<input type="hidden" name="rev" value="%d">
<label>%s <input type="text" name="nickname" value="%s"></label>
<label>%s <input type="month" name="birthday" value="%04d-%02d"></label>
<label><input type="checkbox" name="disabled"%s> %s</label>
<span class="age">%d</span>
<button type="submit">%s</button>
</form>
<form method="post" action="%s" class="inline">
<input type="hidden" name="rev" value="%d">
<button type="submit">%s</button>
</form>
</article>`,
		esc(href(ctx, "/kids/"+k.KidID+"/update")),
		k.Rev,
		esc(appI18n.T(ctx, "KidsNickname")), esc(k.Nickname),
		esc(appI18n.T(ctx, "KidsBirthday")), k.BirthYear, k.BirthMonth,
		checkedAttr(k.Disabled), "disabled",
		k.Age(now),
		esc(appI18n.T(ctx, "KidsSave")),
		esc(href(ctx, "/kids/"+k.KidID+"/delete")),
		k.Rev,
		esc(appI18n.T(ctx, "KidsDelete")))
	return err
}

func checkedAttr(v bool) string {
	if v {
		return " checked"
	}
	return ""
}

// SettingsPage renders the LLM endpoint form and the export link.
func SettingsPage(settings *model.LLMSettings, info, errorMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := flash(w, info, errorMsg); err != nil {
			return err
		}
		var llmURL, apiKey string
		if settings != nil {
			llmURL = settings.LLMURL
			apiKey = settings.APIKey
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">
<label>%s <input type="url" name="llm_url" value="%s"></label>
<label>%s <input type="password" name="api_key" value="%s"></label>
<button type="submit">%s</button>
<button type="submit" formaction="%s">%s</button>
</form>`,
			esc(href(ctx, "/settings")),
			esc(appI18n.T(ctx, "SettingsLLMURL")), esc(llmURL),
			esc(appI18n.T(ctx, "SettingsLLMKey")), esc(apiKey),
			esc(appI18n.T(ctx, "KidsSave")),
			esc(href(ctx, "/settings/test")),
			esc(appI18n.T(ctx, "SettingsTest"))); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<p><a href="%s" download>%s</a></p>`,
			esc(href(ctx, "/settings/export")),
			esc(appI18n.T(ctx, "SettingsExport")))
		return err
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(appI18n.T(ctx, "SettingsTitle"), true, body).Render(ctx, w)
	})
}
