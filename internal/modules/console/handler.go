package console

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/notify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler exposes the console pages and form commands.
type Handler struct {
	console *Console
	page    *template.Template
}

func NewHandler(console *Console) *Handler {
	return &Handler{
		console: console,
		page:    template.Must(template.New("page").Parse(pageHTML)),
	}
}

// Router returns a chi router with the console routes and the standard
// middleware stack.
func (h *Handler) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withSecurityHeaders)
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.index)
	r.Get("/state", h.state)
	r.Get("/healthz", h.healthz)
	r.Get("/static/app.css", h.css)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.create)
		r.Post("/refresh", h.refresh)
		r.Post("/{id}/update", h.update)
		r.Post("/{id}/delete", h.delete)
		r.Post("/{id}/edit", h.edit)
		r.Post("/{id}/select", h.selectProduct)
	})
	r.Route("/draft", func(r chi.Router) {
		r.Post("/reset", h.resetDraft)
		r.Post("/generate", h.generate)
	})
	r.Post("/notice/dismiss", h.dismiss)
}

type pageData struct {
	View   *pageView
	Notice *notify.Notice
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{View: h.console.currentView()}
	if n, ok := h.console.Notice(); ok {
		data.Notice = &n
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.page.Execute(w, data); err != nil {
		h.console.log.Error("render page", "error", err)
	}
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	_ = h.console.Refresh(commandContext(r))
	backToIndex(w, r)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, description, err := readDraft(r)
	if err != nil {
		_ = h.console.fail("create", err)
		backToIndex(w, r)
		return
	}
	_ = h.console.Create(commandContext(r), form, description, r.PostFormValue("auto_generate") == "on")
	backToIndex(w, r)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	form, description, err := readDraft(r)
	if err != nil {
		_ = h.console.fail("update", err)
		backToIndex(w, r)
		return
	}
	_ = h.console.Update(commandContext(r), chi.URLParam(r, "id"), form, description, r.PostFormValue("regenerate") == "on")
	backToIndex(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	_ = h.console.Delete(commandContext(r), chi.URLParam(r, "id"))
	backToIndex(w, r)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	_ = h.console.Edit(chi.URLParam(r, "id"))
	backToIndex(w, r)
}

func (h *Handler) selectProduct(w http.ResponseWriter, r *http.Request) {
	_ = h.console.Select(chi.URLParam(r, "id"))
	backToIndex(w, r)
}

func (h *Handler) resetDraft(w http.ResponseWriter, r *http.Request) {
	h.console.ResetDraft()
	backToIndex(w, r)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	form, description, err := readDraft(r)
	if err != nil {
		_ = h.console.fail("generate", err)
		backToIndex(w, r)
		return
	}
	_ = h.console.Generate(commandContext(r), form, description)
	backToIndex(w, r)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	h.console.DismissNotice()
	backToIndex(w, r)
}

type stateResponse struct {
	Version          uint64         `json:"version"`
	Products         interface{}    `json:"products"`
	SelectedID       string         `json:"selected_id,omitempty"`
	EditingID        string         `json:"editing_id,omitempty"`
	Draft            brief.Form     `json:"draft"`
	DraftDescription string         `json:"draft_description"`
	Notice           *notify.Notice `json:"notice,omitempty"`
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	s := h.console.Snapshot()
	resp := stateResponse{
		Version:          s.Version,
		Products:         s.Products,
		SelectedID:       s.SelectedID,
		EditingID:        s.EditingID,
		Draft:            s.Draft,
		DraftDescription: s.DraftDescription,
	}
	if n, ok := h.console.Notice(); ok {
		resp.Notice = &n
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) css(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(appCSS))
}

// commandContext detaches a command from the browser connection: a request that
// has been started is always awaited to completion.
func commandContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// readDraft reads the brief form. A body that cannot be parsed is reported
// instead of being treated as an empty form.
func readDraft(r *http.Request) (brief.Form, string, error) {
	if err := r.ParseForm(); err != nil {
		return brief.Form{}, "", &catalog.ValidationError{Field: "form", Message: "the submitted form could not be read"}
	}
	return brief.Form{
		Name:            r.PostFormValue("name"),
		Category:        r.PostFormValue("category"),
		Brand:           r.PostFormValue("brand"),
		Tagline:         r.PostFormValue("tagline"),
		Features:        r.PostFormValue("features"),
		Keywords:        r.PostFormValue("seo_keywords"),
		Tone:            r.PostFormValue("tone"),
		Audience:        r.PostFormValue("audience"),
		Language:        r.PostFormValue("language"),
		AdditionalNotes: r.PostFormValue("additional_notes"),
		Length:          r.PostFormValue("length"),
	}, r.PostFormValue("description"), nil
}

func backToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; base-uri 'none'; form-action 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
