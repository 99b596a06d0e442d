package i18n

import "net/http"

// Middleware attaches a localizer to each request, preferring a "lang"
// query parameter or cookie over the Accept-Language header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang != "" {
			http.SetCookie(w, &http.Cookie{
				Name:   "lang",
				Value:  lang,
				Path:   "/",
				MaxAge: 365 * 24 * 60 * 60,
			})
		}
		if lang == "" {
			if c, err := r.Cookie("lang"); err == nil {
				lang = c.Value
			}
		}
		if lang == "" {
			lang = r.Header.Get("Accept-Language")
		}
		next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), lang)))
	})
}
