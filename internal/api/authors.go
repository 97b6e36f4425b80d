package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/events"
	"github.com/foliolabs/folio/internal/scoring"
	"github.com/foliolabs/folio/internal/store"
)

type AuthorsHandler struct {
	store    store.Store
	events   events.Client
	resolver *scoring.Resolver
	comparer *scoring.Comparer
	logger   *slog.Logger
}

func NewAuthorsHandler(s store.Store, ev events.Client, resolver *scoring.Resolver,
	comparer *scoring.Comparer, logger *slog.Logger) *AuthorsHandler {
	return &AuthorsHandler{store: s, events: ev, resolver: resolver, comparer: comparer, logger: logger}
}

type CreateAuthorRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	ReaderID string `json:"reader_id,omitempty"`
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	author := &store.Author{Name: req.Name, Bio: req.Bio}
	if req.ReaderID != "" {
		readerID, err := uuid.Parse(req.ReaderID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader_id"})
			return
		}
		author.ReaderID = &readerID
	}

	if err := h.store.CreateAuthor(r.Context(), author); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

func (h *AuthorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid author id"})
		return
	}

	author, err := h.store.GetAuthor(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if author == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "author not found"})
		return
	}

	// The count drives the "ratings until compatibility" progress shown
	// on the author page, so it rides along with the detail view.
	total, err := h.store.CountRatingsForAuthor(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"author":        author,
		"total_ratings": total,
	})
}

// Aggregate returns the author's averaged ratings across all their
// books with a straight-average overall. This is the author-facing
// management figure and deliberately reflects no reader's weighting.
// GET /authors/{id}/aggregate
func (h *AuthorsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	authorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid author id"})
		return
	}

	ratings, err := h.store.ListRatingsForAuthor(r.Context(), authorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, scoring.AggregateStraight(ratings))
}

// Compatibility scores the calling reader against an author: the
// author's averaged ratings are compared with the reader's resolved
// weight profile. GET /authors/{id}/compatibility
func (h *AuthorsHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	result, ok := h.compare(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	compatChecksTotal.WithLabelValues(result.Overall).Inc()
	if result.HasEnoughRatings {
		compatNormalizedDifference.Observe(result.NormalizedDifference)
	}

	if h.events != nil {
		if err := h.events.Publish(r.Context(), events.SubjectCompatChecked(chi.URLParam(r, "id")), result); err != nil {
			h.logger.Warn("compat event publish failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// Explain returns the compatibility breakdown together with the inputs
// that produced it, for UI drill-down and debugging.
// GET /scoring/explain/{author_id}
func (h *AuthorsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	result, ok := h.compare(w, r, chi.URLParam(r, "author_id"))
	if !ok {
		return
	}

	readerID, _ := uuid.Parse(r.Header.Get("X-Reader-ID"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"author_id":      chi.URLParam(r, "author_id"),
		"viewer_profile": h.resolver.ProfileForReader(r.Context(), readerID),
		"result":         result,
	})
}

func (h *AuthorsHandler) compare(w http.ResponseWriter, r *http.Request, rawAuthorID string) (scoring.CompatibilityResult, bool) {
	authorID, err := uuid.Parse(rawAuthorID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid author id"})
		return scoring.CompatibilityResult{}, false
	}
	readerID, err := uuid.Parse(r.Header.Get("X-Reader-ID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reader id"})
		return scoring.CompatibilityResult{}, false
	}

	author, err := h.store.GetAuthor(r.Context(), authorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return scoring.CompatibilityResult{}, false
	}
	if author == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "author not found"})
		return scoring.CompatibilityResult{}, false
	}

	ratings, err := h.store.ListRatingsForAuthor(r.Context(), authorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return scoring.CompatibilityResult{}, false
	}

	viewer := h.resolver.ProfileForReader(r.Context(), readerID)
	subject := scoring.Aggregate(ratings, viewer)
	return h.comparer.Compare(subject, viewer, len(ratings)), true
}
