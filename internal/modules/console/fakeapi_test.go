package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// fakeAPI is an in-memory stand-in for the remote product API.
type fakeAPI struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	order    []string
	clock    time.Time
	calls    int

	generateStatus int
	listStatus     int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{
		products: map[string]*catalog.Product{},
		clock:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			api.mu.Lock()
			api.calls++
			api.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/products", api.list)
	r.Post("/api/products", api.create)
	r.Post("/api/products/generate", api.generate)
	r.Put("/api/products/{id}", api.update)
	r.Delete("/api/products/{id}", api.remove)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func (a *fakeAPI) setStatus(field *int, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	*field = status
}

// seed stores a record updated the given number of minutes after the clock start.
func (a *fakeAPI) seed(id, name string, minutes int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ts := catalog.NewTimestamp(a.clock.Add(time.Duration(minutes) * time.Minute))
	a.products[id] = &catalog.Product{ID: id, Name: name, Features: []string{}, SEOKeywords: []string{},
		Length: catalog.LengthDetailed, Description: "Copy for " + name, CreatedAt: ts, UpdatedAt: ts}
	a.order = append(a.order, id)
}

func (a *fakeAPI) tick() catalog.Timestamp {
	a.clock = a.clock.Add(time.Hour)
	return catalog.NewTimestamp(a.clock)
}

func apiJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listStatus != 0 {
		apiJSON(w, a.listStatus, map[string]string{"detail": "store offline"})
		return
	}
	out := make([]*catalog.Product, 0, len(a.order))
	for _, id := range a.order {
		if p, ok := a.products[id]; ok {
			out = append(out, p)
		}
	}
	apiJSON(w, http.StatusOK, out)
}

func (a *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	if req.AutoGenerate || desc == "" {
		desc = "Generated copy for " + req.Name
	}
	now := a.tick()
	p := &catalog.Product{
		ID: uuid.NewString(), Name: req.Name, Category: req.Category, Brand: req.Brand,
		Tagline: req.Tagline, Features: req.Features, SEOKeywords: req.SEOKeywords, Tone: req.Tone,
		Audience: req.Audience, Language: req.Language, AdditionalNotes: req.AdditionalNotes,
		Length: req.Length, Description: desc, CreatedAt: now, UpdatedAt: now,
	}
	a.products[p.ID] = p
	a.order = append(a.order, p.ID)
	apiJSON(w, http.StatusCreated, p)
}

func (a *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var req catalog.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.products[chi.URLParam(r, "id")]
	if !ok {
		apiJSON(w, http.StatusNotFound, map[string]string{"detail": "Product not found"})
		return
	}
	next := *p
	next.Name, next.Category, next.Brand, next.Tagline = req.Name, req.Category, req.Brand, req.Tagline
	next.Features, next.SEOKeywords, next.Tone, next.Audience = req.Features, req.SEOKeywords, req.Tone, req.Audience
	next.Language, next.AdditionalNotes, next.Length = req.Language, req.AdditionalNotes, req.Length
	switch {
	case req.Description != nil:
		next.Description = *req.Description
	case req.RegenerateDescription:
		next.Description = "Regenerated copy for " + req.Name
	}
	next.UpdatedAt = a.tick()
	a.products[next.ID] = &next
	apiJSON(w, http.StatusOK, &next)
}

func (a *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := a.products[id]; !ok {
		apiJSON(w, http.StatusNotFound, map[string]string{"detail": "Product not found"})
		return
	}
	delete(a.products, id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *fakeAPI) generate(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	status := a.generateStatus
	a.mu.Unlock()
	if status == http.StatusServiceUnavailable {
		apiJSON(w, status, map[string]string{"detail": "Writer API key not configured. Set WRITER_API_KEY to enable generation."})
		return
	}
	var b catalog.Brief
	_ = json.NewDecoder(r.Body).Decode(&b)
	apiJSON(w, http.StatusOK, map[string]string{"description": "# " + b.Name + "\n\n- Preview copy\n\n<script>alert(1)</script>"})
}
