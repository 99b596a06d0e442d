package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kidexam/internal/handler/views"
	appI18n "kidexam/internal/i18n"
	"kidexam/internal/llm"
	"kidexam/internal/model"
	"kidexam/internal/store"
)

func newKidID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// parseBirthday splits an <input type="month"> value ("2019-03") into
// year and month.
func parseBirthday(v string) (year, month int, err error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), int(t.Month()), nil
}

func (h *Handler) handleKidsPage(w http.ResponseWriter, r *http.Request) {
	h.renderKids(w, r, "", "")
}

func (h *Handler) renderKids(w http.ResponseWriter, r *http.Request, info, errMsg string) {
	kids, err := h.store.ListKids()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.KidsPage(kids, info, errMsg))
}

func (h *Handler) handleAddKid(w http.ResponseWriter, r *http.Request) {
	nickname := r.FormValue("nickname")
	if nickname == "" {
		http.Error(w, "nickname required", http.StatusBadRequest)
		return
	}
	year, month, err := parseBirthday(r.FormValue("birthday"))
	if err != nil {
		http.Error(w, "invalid birthday", http.StatusBadRequest)
		return
	}

	kidID, err := newKidID()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.store.AddKid(model.Kid{
		KidID:      kidID,
		Nickname:   nickname,
		BirthYear:  year,
		BirthMonth: month,
	}); err != nil {
		slog.Error("failed to add kid", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("kid added", "kid_id", kidID, "nickname", nickname)
	h.renderKids(w, r, appI18n.T(r.Context(), "KidsAdded"), "")
}

func (h *Handler) handleUpdateKid(w http.ResponseWriter, r *http.Request) {
	kidID := chi.URLParam(r, "kidID")
	rev, err := strconv.ParseInt(r.FormValue("rev"), 10, 64)
	if err != nil {
		http.Error(w, "invalid revision", http.StatusBadRequest)
		return
	}
	year, month, err := parseBirthday(r.FormValue("birthday"))
	if err != nil {
		http.Error(w, "invalid birthday", http.StatusBadRequest)
		return
	}

	err = h.store.UpdateKid(model.Kid{
		KidID:      kidID,
		Nickname:   r.FormValue("nickname"),
		BirthYear:  year,
		BirthMonth: month,
		Disabled:   r.FormValue("disabled") != "",
		Rev:        rev,
	})
	if err != nil {
		h.renderKidError(w, r, kidID, err)
		return
	}

	h.renderKids(w, r, appI18n.T(r.Context(), "KidsUpdated"), "")
}

func (h *Handler) handleDeleteKid(w http.ResponseWriter, r *http.Request) {
	kidID := chi.URLParam(r, "kidID")
	rev, err := strconv.ParseInt(r.FormValue("rev"), 10, 64)
	if err != nil {
		http.Error(w, "invalid revision", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteKid(kidID, rev); err != nil {
		h.renderKidError(w, r, kidID, err)
		return
	}

	slog.Info("kid deleted", "kid_id", kidID)
	h.renderKids(w, r, appI18n.T(r.Context(), "KidsDeleted"), "")
}

func (h *Handler) renderKidError(w http.ResponseWriter, r *http.Request, kidID string, err error) {
	switch {
	case errors.Is(err, store.ErrConflict):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		h.renderKids(w, r, "", appI18n.T(r.Context(), "KidsConflict"))
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, appI18n.T(r.Context(), "ErrorNotFound"), http.StatusNotFound)
	default:
		slog.Error("kid update failed", "kid_id", kidID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	h.renderSettings(w, r, "", "")
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, info, errMsg string) {
	settings, err := h.store.GetLLMSettings()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.SettingsPage(settings, info, errMsg))
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SaveLLMSettings(r.FormValue("llm_url"), r.FormValue("api_key")); err != nil {
		slog.Error("failed to save settings", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.renderSettings(w, r, appI18n.T(r.Context(), "SettingsSaved"), "")
}

func (h *Handler) handleTestLLM(w http.ResponseWriter, r *http.Request) {
	client := llm.New(r.FormValue("llm_url"), r.FormValue("api_key"), h.config.LLMModel)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		h.renderSettings(w, r, "", appI18n.Td(r.Context(), "SettingsTestFail", map[string]any{"Reason": err.Error()}))
		return
	}
	h.renderSettings(w, r, appI18n.T(r.Context(), "SettingsTestOK"), "")
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.ExportAll()
	if err != nil {
		slog.Error("export failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="kidexam-export.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		slog.Error("export encode failed", "error", err)
	}
}
