package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"kidexam/internal/exam"
	"kidexam/internal/handler/views"
	appI18n "kidexam/internal/i18n"
	"kidexam/internal/llm"
	"kidexam/internal/model"
	"kidexam/internal/questionset"
	"kidexam/internal/store"
)

// Handler holds shared dependencies for HTTP handlers, plus the in-memory
// authoring and attempt state. The app serves one household, so a single
// loaded question-set list and at most one running attempt exist at a
// time; mu guards them.
type Handler struct {
	store  *store.Store
	config model.AppConfig

	mu       sync.Mutex
	rawInput string              // last pasted or generated JSON
	sets     []model.QuestionSet // normalized and shuffled, ready to run
	sess     *exam.Session

	// Last finished attempt, kept for the results page.
	lastResult    *model.AttemptResult
	lastQuestions []model.FlatQuestion
}

// New creates a new Handler.
func New(s *store.Store, cfg model.AppConfig) (*Handler, error) {
	return &Handler{store: s, config: cfg}, nil
}

// sampleSets pre-fills the editor on first visit so the JSON shape is
// visible without reading any docs.
const sampleSets = `{
  "question_sets": [
    {
      "id": 1,
      "name": "Sample quiz",
      "active": true,
      "max_score": 2,
      "sections": [
        {
          "id": "A",
          "text": "Pick the right answers.",
          "questions": [
            {
              "id": "A.1",
              "question": "Which animals can fly?",
              "options": [
                {"text": "Sparrow", "score": 1},
                {"text": "Cat", "score": 0},
                {"text": "Bat", "score": 1},
                {"text": "Dog", "score": 0}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Use(h.withBasePath)

	r.Get("/static/style.css", h.handleStyleCSS)
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/", h.handleIndex)
		r.Post("/logout", h.handleLogout)

		r.Get("/editor", h.handleEditorPage)
		r.Post("/editor/load", h.handleEditorLoad)
		r.Post("/editor/generate", h.handleGenerate)

		r.Get("/preview", h.handlePreviewPage)
		r.Post("/preview/shuffle", h.handlePreviewShuffle)

		r.Post("/exam/start", h.handleStartExam)
		r.Get("/exam", h.handleExamPage)
		r.Post("/exam/toggle", h.handleToggle)
		r.Post("/exam/prev", h.handlePrev)
		r.Post("/exam/next", h.handleNext)
		r.Post("/exam/skip", h.handleSkip)
		r.Post("/exam/finish", h.handleFinish)
		r.Post("/exam/confirm", h.handleConfirmFinish)

		r.Get("/results", h.handleResultsPage)

		r.Get("/kids", h.handleKidsPage)
		r.Post("/kids/add", h.handleAddKid)
		r.Post("/kids/{kidID}/update", h.handleUpdateKid)
		r.Post("/kids/{kidID}/delete", h.handleDeleteKid)

		r.Get("/settings", h.handleSettingsPage)
		r.Post("/settings", h.handleSaveSettings)
		r.Post("/settings/test", h.handleTestLLM)
		r.Get("/settings/export", h.handleExport)
	})
}

// path prefixes a route with the deployment base path.
func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}

func (h *Handler) withBasePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
}

func (h *Handler) handleEditorPage(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.ListTemplates()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	kids, err := h.store.ListKids()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	raw := h.rawInput
	h.mu.Unlock()
	if raw == "" {
		raw = sampleSets
	}

	h.render(w, r, views.EditorPage(templates, kids, raw, "", ""))
}

func (h *Handler) handleEditorLoad(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("raw")

	sets, err := questionset.Parse(raw)
	if err != nil {
		h.renderEditorError(w, r, raw, appI18n.Td(r.Context(), "EditorParseError", map[string]any{"Reason": err.Error()}))
		return
	}
	if len(sets) == 0 {
		h.renderEditorError(w, r, raw, appI18n.T(r.Context(), "EditorNoSets"))
		return
	}

	h.mu.Lock()
	h.rawInput = raw
	h.sets = questionset.ShuffleSets(sets)
	h.mu.Unlock()

	slog.Info("question sets loaded", "sets", len(sets))
	http.Redirect(w, r, h.path("/preview"), http.StatusSeeOther)
}

func (h *Handler) renderEditorError(w http.ResponseWriter, r *http.Request, raw, msg string) {
	templates, _ := h.store.ListTemplates()
	kids, _ := h.store.ListKids()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	h.render(w, r, views.EditorPage(templates, kids, raw, msg, ""))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	templateID := r.FormValue("template_id")
	kidID := r.FormValue("kid_id")

	settings, err := h.store.GetLLMSettings()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if settings == nil || settings.LLMURL == "" {
		h.renderEditorError(w, r, "", appI18n.Td(r.Context(), "SettingsTestFail", map[string]any{"Reason": "no LLM endpoint configured"}))
		return
	}

	tpl, err := h.store.GetTemplate(templateID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	kid, err := h.store.GetKid(kidID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	client := llm.New(settings.LLMURL, settings.APIKey, h.config.LLMModel)
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	sets, raw, err := client.GenerateQuestionSet(ctx, tpl, kid.Age(time.Now()))
	if err != nil {
		slog.Error("question set generation failed", "template", templateID, "error", err)
		h.renderEditorError(w, r, raw, appI18n.Td(r.Context(), "EditorParseError", map[string]any{"Reason": err.Error()}))
		return
	}

	h.mu.Lock()
	h.rawInput = raw
	h.sets = questionset.ShuffleSets(sets)
	h.mu.Unlock()

	slog.Info("question sets generated", "template", templateID, "sets", len(sets))
	http.Redirect(w, r, h.path("/preview"), http.StatusSeeOther)
}

func (h *Handler) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	sets := h.sets
	h.mu.Unlock()

	if len(sets) == 0 {
		http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
		return
	}

	kids, err := h.store.ListKids()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// The display gets an extra throwaway option shuffle; the stored order
	// the attempt will use stays as loaded.
	display := questionset.PreviewShuffle(sets)
	h.render(w, r, views.PreviewPage(display, kids, len(questionset.Flatten(sets))))
}

func (h *Handler) handlePreviewShuffle(w http.ResponseWriter, r *http.Request) {
	// Every preview render reshuffles the displayed options.
	http.Redirect(w, r, h.path("/preview"), http.StatusSeeOther)
}

func (h *Handler) handleStartExam(w http.ResponseWriter, r *http.Request) {
	kidID := r.FormValue("kid_id")

	h.mu.Lock()
	questions := questionset.Flatten(h.sets)
	if len(questions) > 0 {
		h.sess = exam.NewSession(questions, kidID)
	}
	h.mu.Unlock()

	if len(questions) == 0 {
		http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
		return
	}

	slog.Info("attempt started", "kid_id", kidID, "questions", len(questions))
	http.Redirect(w, r, h.path("/exam"), http.StatusSeeOther)
}

func (h *Handler) handleExamPage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	sess := h.sess
	h.mu.Unlock()

	if sess == nil {
		http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
		return
	}
	h.render(w, r, views.ExamPage(sess))
}

// withSession runs fn on the running session under the lock, then redirects
// back to the exam page. With no session it redirects to the editor.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*exam.Session)) {
	h.mu.Lock()
	sess := h.sess
	if sess != nil {
		fn(sess)
	}
	h.mu.Unlock()

	if sess == nil {
		http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, h.path("/exam"), http.StatusSeeOther)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	option := r.FormValue("option")
	h.withSession(w, r, func(s *exam.Session) { s.ToggleOption(option) })
}

func (h *Handler) handlePrev(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *exam.Session) { s.Prev() })
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *exam.Session) { s.Next() })
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *exam.Session) { s.Skip() })
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *exam.Session) { s.RequestFinish() })
}

func (h *Handler) handleConfirmFinish(w http.ResponseWriter, r *http.Request) {
	accept := r.FormValue("accept") == "yes"

	h.mu.Lock()
	sess := h.sess
	if sess == nil {
		h.mu.Unlock()
		http.Redirect(w, r, h.path("/editor"), http.StatusSeeOther)
		return
	}

	result := sess.ConfirmFinish(accept)
	if result == nil {
		h.mu.Unlock()
		http.Redirect(w, r, h.path("/exam"), http.StatusSeeOther)
		return
	}

	h.lastResult = result
	h.lastQuestions = sess.Questions()
	h.sess = nil
	h.mu.Unlock()

	if _, err := h.store.SaveAttempt(*result); err != nil {
		// The attempt still renders from memory; only history is lost.
		slog.Error("failed to save attempt", "error", err)
	}

	slog.Info("attempt finished", "kid_id", result.KidID, "score", result.Score)
	http.Redirect(w, r, h.path("/results"), http.StatusSeeOther)
}

func (h *Handler) handleResultsPage(w http.ResponseWriter, r *http.Request) {
	view := exam.FilterView(r.URL.Query().Get("view"))
	if !exam.ValidFilter(view) {
		view = exam.FilterAll
	}

	h.mu.Lock()
	result := h.lastResult
	questions := h.lastQuestions
	h.mu.Unlock()

	if result != nil {
		h.render(w, r, views.ResultsPage(*result, questions, view))
		return
	}

	attempts, err := h.store.ListAttempts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	kids, err := h.store.ListKids()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names := make(map[string]string, len(kids))
	for _, k := range kids {
		names[k.KidID] = k.Nickname
	}
	h.render(w, r, views.AttemptsPage(attempts, names))
}
