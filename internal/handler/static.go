package handler

import (
	_ "embed"
	"net/http"
)

//go:embed assets/style.css
var styleCSS []byte

func (h *Handler) handleStyleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(styleCSS)
}
