package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
)

// browseService defines the query surface needed by CatalogHandler.
type browseService interface {
	Search(ctx context.Context, query string, opts browse.SearchOptions) ([]browse.SearchResult, error)
	Root(ctx context.Context, label string) (*browse.RootView, error)
	Class(ctx context.Context, name string) (*browse.ClassView, error)
	Entry(ctx context.Context, entryNo string) (*browse.EntryView, error)
	Row(ctx context.Context, entryIndex string) (*browse.RowView, error)
	Sentences(ctx context.Context, entryID string) ([]domain.SentenceExample, error)
	Roots(ctx context.Context, prefix string) ([]catalog.RootSummary, error)
	Classes(ctx context.Context) ([]catalog.ClassSummary, error)
}

// CatalogHandler serves the read-only catalog endpoints.
type CatalogHandler struct {
	svc browseService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc browseService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

// Register mounts the catalog routes on mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("GET /api/roots", h.Roots)
	mux.HandleFunc("GET /api/roots/{root}", h.Root)
	mux.HandleFunc("GET /api/classes", h.Classes)
	mux.HandleFunc("GET /api/classes/{name}", h.Class)
	mux.HandleFunc("GET /api/entries/{entryNo}", h.Entry)
	mux.HandleFunc("GET /api/rows/{entryIndex}", h.Row)
	mux.HandleFunc("GET /api/sentences/{entryID}", h.Sentences)
}

type searchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []browse.SearchResult `json:"results"`
}

// Search ranks dictionary rows.
// GET /api/search?q=ask&limit=20&linked=true
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts browse.SearchOptions
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		opts.Limit = n
	}
	if v := q.Get("linked"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "linked must be a boolean")
			return
		}
		opts.LinkedOnly = b
	}

	results, err := h.svc.Search(r.Context(), q.Get("q"), opts)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q.Get("q"),
		Count:   len(results),
		Results: results,
	})
}

// Roots lists roots, optionally filtered by label prefix.
// GET /api/roots?prefix=ga
func (h *CatalogHandler) Roots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.svc.Roots(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roots)
}

// Root returns the analyses filed under one root.
// GET /api/roots/{root}
func (h *CatalogHandler) Root(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Root(r.Context(), r.PathValue("root"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Classes lists verb classes.
// GET /api/classes
func (h *CatalogHandler) Classes(w http.ResponseWriter, r *http.Request) {
	classes, err := h.svc.Classes(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// Class returns a class with its endings and analyses.
// GET /api/classes/{name}
func (h *CatalogHandler) Class(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Class(r.Context(), r.PathValue("name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Entry returns one analysis.
// GET /api/entries/{entryNo}
func (h *CatalogHandler) Entry(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Entry(r.Context(), r.PathValue("entryNo"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Row returns a dictionary row with its analysis and sentences.
// GET /api/rows/{entryIndex}
func (h *CatalogHandler) Row(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Row(r.Context(), r.PathValue("entryIndex"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Sentences returns the example sentences of a dictionary entry.
// GET /api/sentences/{entryID}
func (h *CatalogHandler) Sentences(w http.ResponseWriter, r *http.Request) {
	sentences, err := h.svc.Sentences(r.Context(), r.PathValue("entryID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sentences)
}

func (h *CatalogHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrNotLoaded):
		w.Header().Set("Retry-After", "5")
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
	default:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
