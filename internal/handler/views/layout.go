// Package views renders the HTML pages. Components are built by hand on
// templ's Component interface so handlers compose and render them the
// same way regardless of how each page is produced.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	appI18n "kidexam/internal/i18n"
	"kidexam/internal/model"
)

// esc HTML-escapes user-controlled text.
func esc(s string) string { return templ.EscapeString(s) }

// href prefixes a path with the deployment base path from the context.
func href(ctx context.Context, path string) string {
	return model.BasePathFromContext(ctx) + path
}

// page wraps body content in the shared chrome: head, nav bar, flash area.
func page(title string, withNav bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appTitle := appI18n.T(ctx, "AppTitle")
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s — %s</title>
<link rel="stylesheet" href="%s">
</head>
<body>
`, esc(title), esc(appTitle), esc(href(ctx, "/static/style.css"))); err != nil {
			return err
		}
		if withNav {
			if err := navBar().Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<main><h1>%s</h1>`, esc(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func navBar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links := []struct {
			path  string
			msgID string
		}{
			{"/editor", "NavEditor"},
			{"/kids", "NavKids"},
			{"/results", "NavResults"},
			{"/settings", "NavSettings"},
		}
		if _, err := io.WriteString(w, `<nav><span class="brand">`+esc(appI18n.T(ctx, "AppTitle"))+`</span>`); err != nil {
			return err
		}
		for _, l := range links {
			if _, err := fmt.Fprintf(w, `<a href="%s">%s</a>`, esc(href(ctx, l.path)), esc(appI18n.T(ctx, l.msgID))); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="%s" class="inline"><button type="submit">%s</button></form></nav>
`, esc(href(ctx, "/logout")), esc(appI18n.T(ctx, "NavLogout")))
		return err
	})
}

// flash renders a status or error banner; empty strings render nothing.
func flash(w io.Writer, info, errMsg string) error {
	if errMsg != "" {
		if _, err := fmt.Fprintf(w, `<p class="flash error">%s</p>`, esc(errMsg)); err != nil {
			return err
		}
	}
	if info != "" {
		if _, err := fmt.Fprintf(w, `<p class="flash">%s</p>`, esc(info)); err != nil {
			return err
		}
	}
	return nil
}
